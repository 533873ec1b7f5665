package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntDecoding(t *testing.T) {
	cases := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{`5`, 5, false},
		{`"5"`, 5, false},
		{`" 12 "`, 12, false},
		{`-1`, -1, false},
		{`"five"`, 0, true},
		{`1.5`, 0, true},
		{`true`, 0, true},
	}
	for _, tc := range cases {
		var got FlexInt
		err := json.Unmarshal([]byte(tc.in), &got)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestQuizRequestDecoding(t *testing.T) {
	var req QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"previous_questions":[1,"2",null],"quiz_category":{"type":"Art","id":"2"}}`), &req))

	assert.Equal(t, []FlexInt{1, 2, 0}, req.PreviousQuestions)
	require.NotNil(t, req.QuizCategory)
	require.NotNil(t, req.QuizCategory.ID)
	assert.Equal(t, FlexInt(2), *req.QuizCategory.ID)
	assert.Equal(t, "Art", req.QuizCategory.Type)
}

func TestCreateQuestionRequestKeepsNulls(t *testing.T) {
	var req CreateQuestionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"question":"Q","answer":null}`), &req))

	require.NotNil(t, req.Question)
	assert.Nil(t, req.Answer)
	assert.Nil(t, req.Category)
	assert.Nil(t, req.Difficulty)
}

func TestCategoryMap(t *testing.T) {
	got := CategoryMap([]Category{{ID: 1, Type: "Science"}, {ID: 12, Type: "Music"}})
	assert.Equal(t, map[string]string{"1": "Science", "12": "Music"}, got)
}
