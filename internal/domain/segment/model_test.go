package segment

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "8428538", want: "8428538"},
		{in: " 8428538 ", want: "8428538"},
		{in: "007", want: "7"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "0", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseID(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseID(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseID(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestBestTime(t *testing.T) {
	if _, ok := BestTime(nil); ok {
		t.Fatalf("expected no best time for empty efforts")
	}

	best, ok := BestTime([]Effort{{ElapsedTime: 120}, {ElapsedTime: 95}, {ElapsedTime: 95}, {ElapsedTime: 101}})
	if !ok || best != 95 {
		t.Fatalf("BestTime()=%d,%v want=95,true", best, ok)
	}

	best, ok = BestTime([]Effort{{ElapsedTime: 0}})
	if !ok || best != 0 {
		t.Fatalf("BestTime() zero=%d,%v want=0,true", best, ok)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := map[int]string{
		0:    "0:00",
		95:   "1:35",
		600:  "10:00",
		3725: "1:02:05",
		-3:   "0:00",
	}
	for in, want := range tests {
		if got := FormatElapsed(in); got != want {
			t.Fatalf("FormatElapsed(%d)=%q want=%q", in, got, want)
		}
	}
}
