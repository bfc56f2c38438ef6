package models

// RequestTypeID codes attached to an occurrence by the room-change/exception
// request workflow. Each code carries a fixed label and display color; the
// code always wins over the base type-derived color.
const (
	RequestPendingRoom    = 1
	RequestRoomAssigned   = 2
	RequestActive         = 3
	RequestCancelled      = 4
	RequestSuspended      = 5
	RequestExam           = 6
	RequestRoomChanged    = 7
	RequestTimeChanged    = 8
	RequestTeacherChanged = 9
)

// RequestType is one entry of the canonical status lookup table.
type RequestType struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// requestTypes is the single source of truth for status labels and colors.
// Every view (grid cells, list rows, exports) consults this table; label and
// color are never computed independently elsewhere.
var requestTypes = map[int]RequestType{
	RequestPendingRoom:    {ID: RequestPendingRoom, Label: "Chờ xếp phòng", Color: "#FB8C00"},
	RequestRoomAssigned:   {ID: RequestRoomAssigned, Label: "Đã xếp phòng", Color: "#43A047"},
	RequestActive:         {ID: RequestActive, Label: "Đang hoạt động", Color: "#1E88E5"},
	RequestCancelled:      {ID: RequestCancelled, Label: "Đã hủy", Color: "#E53935"},
	RequestSuspended:      {ID: RequestSuspended, Label: "Tạm ngưng", Color: "#757575"},
	RequestExam:           {ID: RequestExam, Label: "Lịch thi", Color: "#8E24AA"},
	RequestRoomChanged:    {ID: RequestRoomChanged, Label: "Đổi phòng", Color: "#F4511E"},
	RequestTimeChanged:    {ID: RequestTimeChanged, Label: "Đổi lịch", Color: "#00ACC1"},
	RequestTeacherChanged: {ID: RequestTeacherChanged, Label: "Đổi giảng viên", Color: "#6D4C41"},
}

// FallbackRequestType is returned for absent or unknown codes; never fatal.
var FallbackRequestType = RequestType{Label: "Ngoại lệ", Color: "#9E9E9E"}

// LookupRequestType resolves a requestTypeId into its label and color,
// falling back to the neutral entry for unknown codes.
func LookupRequestType(id int) RequestType {
	if rt, ok := requestTypes[id]; ok {
		return rt
	}
	fb := FallbackRequestType
	fb.ID = id
	return fb
}

// RequestTypes returns the full table in id order, for list-view legends.
func RequestTypes() []RequestType {
	out := make([]RequestType, 0, len(requestTypes))
	for id := RequestPendingRoom; id <= RequestTeacherChanged; id++ {
		out = append(out, requestTypes[id])
	}
	return out
}

// Base display colors for plain occurrences, keyed by occurrence type.
var typeColors = map[OccurrenceType]string{
	OccurrenceTheory:   "#3949AB",
	OccurrencePractice: "#00897B",
	OccurrenceExam:     "#8E24AA",
	OccurrenceOnline:   "#039BE5",
}

// TypeColor resolves the base color for an occurrence type.
func TypeColor(t OccurrenceType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return FallbackRequestType.Color
}
