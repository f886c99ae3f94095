package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type body struct {
		Completed Optional[bool]    `json:"completa"`
		Text      Optional[string]  `json:"texto"`
		Category  Optional[*string] `json:"categoria"`
	}

	tests := []struct {
		name          string
		input         string
		completedSet  bool
		textSet       bool
		categorySet   bool
		expectedText  string
		categoryIsNil bool
	}{
		{
			name:          "empty object",
			input:         `{}`,
			categoryIsNil: true,
		},
		{
			name:          "only completion",
			input:         `{"completa": false}`,
			completedSet:  true,
			categoryIsNil: true,
		},
		{
			name:          "text and explicit null",
			input:         `{"texto": "hi", "categoria": null}`,
			textSet:       true,
			categorySet:   true,
			expectedText:  "hi",
			categoryIsNil: true,
		},
		{
			name:         "category value",
			input:        `{"categoria": "work"}`,
			categorySet:  true,
			expectedText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.input), &b))

			assert.Equal(t, tt.completedSet, b.Completed.Set)
			assert.Equal(t, tt.textSet, b.Text.Set)
			assert.Equal(t, tt.categorySet, b.Category.Set)
			assert.Equal(t, tt.expectedText, b.Text.Value)
			assert.Equal(t, tt.categoryIsNil, b.Category.Value == nil)
		})
	}
}

func TestOptional_UnmarshalJSONTypeMismatch(t *testing.T) {
	var o Optional[bool]
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &o))
}

func TestOptional_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(data))
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{Completed: Some(false)}.IsEmpty())
	assert.False(t, TaskPatch{DueDate: Some[*time.Time](nil)}.IsEmpty())
	assert.True(t, SubtaskPatch{}.IsEmpty())
	assert.False(t, SubtaskPatch{Text: Some("x")}.IsEmpty())
}

func TestTaskPatch_Apply(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{Text: "old", DueDate: &due, Category: CategoryWork}

	TaskPatch{
		Completed: Some(true),
		DueDate:   Some[*time.Time](nil),
	}.Apply(&task)

	assert.True(t, task.Completed)
	assert.Equal(t, "old", task.Text)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, CategoryWork, task.Category)

	subtask := Subtask{Text: "step"}
	SubtaskPatch{Text: Some("renamed")}.Apply(&subtask)
	assert.Equal(t, "renamed", subtask.Text)
	assert.False(t, subtask.Completed)
}

func TestOptional_ZeroIsAbsent(t *testing.T) {
	var o Optional[string]
	v, ok := o.Get()
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestOptional_OmitZero(t *testing.T) {
	data, err := json.Marshal(struct {
		Completed Optional[bool]    `json:"completa,omitzero"`
		Text      Optional[string]  `json:"texto,omitzero"`
		Category  Optional[*string] `json:"categoria,omitzero"`
	}{Completed: Some(false), Category: Some[*string](nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completa":false,"categoria":null}`, string(data))
}
