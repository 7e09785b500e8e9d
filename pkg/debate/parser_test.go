package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModelReplyValidJSON(t *testing.T) {
	raw := `Here is my answer:
{"reply": "Uniforms erase individuality.", "stance": "disagree", "outcome": "ai", "score": 0.72, "concession": 0.1, "student_strength": 0.4}
Hope that helps!`

	got := ParseModelReply(raw, 0.5)

	assert.False(t, got.Fallback)
	assert.Equal(t, "Uniforms erase individuality.", got.Result.Reply)
	assert.Equal(t, StanceDisagree, got.Result.Stance)
	assert.Equal(t, 0.72, got.Result.RawScore)
	assert.Equal(t, 0.1, got.Result.Concession)
	assert.Equal(t, 0.4, got.Result.StudentStrength)
}

func TestParseModelReplyMissingFieldsUseDefaults(t *testing.T) {
	got := ParseModelReply(`{"reply": "Fair point."}`, 0.65)

	assert.False(t, got.Fallback)
	assert.Equal(t, "Fair point.", got.Result.Reply)
	assert.Equal(t, StanceMixed, got.Result.Stance)
	assert.Equal(t, 0.65, got.Result.RawScore)
	assert.Equal(t, 0.0, got.Result.Concession)
	assert.Equal(t, 0.5, got.Result.StudentStrength)
}

func TestParseModelReplyPlainText(t *testing.T) {
	got := ParseModelReply("I refuse to answer in JSON today.", 0.5)

	assert.True(t, got.Fallback)
	assert.Equal(t, FallbackReply, got.Result.Reply)
	assert.Equal(t, StanceMixed, got.Result.Stance)
	assert.Equal(t, 0.5, got.Result.RawScore)
	assert.Equal(t, 0.5, got.Result.StudentStrength)
}

func TestParseModelReplyInvalidJSON(t *testing.T) {
	got := ParseModelReply(`{"reply": "broken`, 0.45)

	assert.True(t, got.Fallback)
	assert.Equal(t, 0.45, got.Result.RawScore)
}

func TestParseModelReplyBracesButGarbage(t *testing.T) {
	got := ParseModelReply("look at this {not json at all} text", 0.5)

	assert.True(t, got.Fallback)
}

func TestParseModelReplyClampsOutOfRange(t *testing.T) {
	got := ParseModelReply(`{"reply": "x", "score": 3.5, "concession": -2, "student_strength": 1.8}`, 0.5)

	assert.False(t, got.Fallback)
	assert.Equal(t, 1.0, got.Result.RawScore)
	assert.Equal(t, 0.0, got.Result.Concession)
	assert.Equal(t, 1.0, got.Result.StudentStrength)
}

func TestParseModelReplyNormalizesStance(t *testing.T) {
	tests := []struct {
		in   string
		want Stance
	}{
		{"agree", StanceAgree},
		{" AGREE ", StanceAgree},
		{"Disagree", StanceDisagree},
		{"mixed", StanceMixed},
		{"confused", StanceMixed},
		{"", StanceMixed},
	}
	for _, tt := range tests {
		got := ParseModelReply(`{"reply": "x", "stance": "`+tt.in+`"}`, 0.5)
		assert.Equal(t, tt.want, got.Result.Stance, "stance %q", tt.in)
	}
}

func TestParseModelReplyEmptyReplyFallsBackToCanned(t *testing.T) {
	got := ParseModelReply(`{"reply": "  ", "score": 0.6}`, 0.5)

	assert.False(t, got.Fallback)
	assert.Equal(t, FallbackReply, got.Result.Reply)
	assert.Equal(t, 0.6, got.Result.RawScore)
}
