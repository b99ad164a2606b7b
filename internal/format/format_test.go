package format

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips bold markers",
			input:    "**PM Awas Yojana**\nA housing scheme",
			expected: "PM Awas Yojana\nA housing scheme",
		},
		{
			name:     "strips list asterisks",
			input:    "* First scheme\n* Second scheme",
			expected: "First scheme\nSecond scheme",
		},
		{
			name:     "breaks line after sentence",
			input:    "Apply online. Visit the portal.",
			expected: "Apply online.\nVisit the portal.",
		},
		{
			name:     "breaks before hyphen continuation",
			input:    "Documents needed -Aadhaar card",
			expected: "Documents needed\n- Aadhaar card",
		},
		{
			name:     "expands bullet glyph",
			input:    "•Eligibility",
			expected: "• Eligibility",
		},
		{
			name:     "drops blank lines and trims",
			input:    "  line one  \n\n\n  line two  ",
			expected: "line one\nline two",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestNormalizeIdempotent 验证对不含列表与加粗标记的已整形输入，
// 再执行一次不改变结果。圆点符号展开本身不具备幂等性，不在此列。
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"simple answer",
		"line one\nline two",
		"first point.\nsecond point.",
		"- item one\n- item two",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
