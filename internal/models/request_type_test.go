package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupRequestType(t *testing.T) {
	cases := []struct {
		id    int
		label string
		color string
	}{
		{RequestPendingRoom, "Chờ xếp phòng", "#FB8C00"},
		{RequestRoomAssigned, "Đã xếp phòng", "#43A047"},
		{RequestActive, "Đang hoạt động", "#1E88E5"},
		{RequestCancelled, "Đã hủy", "#E53935"},
		{RequestSuspended, "Tạm ngưng", "#757575"},
		{RequestExam, "Lịch thi", "#8E24AA"},
		{RequestRoomChanged, "Đổi phòng", "#F4511E"},
		{RequestTimeChanged, "Đổi lịch", "#00ACC1"},
		{RequestTeacherChanged, "Đổi giảng viên", "#6D4C41"},
	}
	for _, tc := range cases {
		rt := LookupRequestType(tc.id)
		assert.Equal(t, tc.id, rt.ID)
		assert.Equal(t, tc.label, rt.Label)
		assert.Equal(t, tc.color, rt.Color)
	}
}

func TestLookupRequestTypeUnknownFallsBack(t *testing.T) {
	rt := LookupRequestType(42)
	assert.Equal(t, 42, rt.ID)
	assert.Equal(t, "Ngoại lệ", rt.Label)
	assert.Equal(t, "#9E9E9E", rt.Color)
}

func TestRequestTypesOrdered(t *testing.T) {
	all := RequestTypes()
	require.Len(t, all, 9)
	for i, rt := range all {
		assert.Equal(t, i+1, rt.ID)
	}
}

func TestTypeColor(t *testing.T) {
	assert.Equal(t, "#3949AB", TypeColor(OccurrenceTheory))
	assert.Equal(t, "#00897B", TypeColor(OccurrencePractice))
	assert.Equal(t, "#8E24AA", TypeColor(OccurrenceExam))
	assert.Equal(t, "#039BE5", TypeColor(OccurrenceOnline))
	assert.Equal(t, "#9E9E9E", TypeColor("unknown"))
}
