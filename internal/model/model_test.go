package model

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"alice", "alice"},
		{"rj_music-fan99", "rj_music-fan99"},
		{"user:with:colons", "user_with_colons"},
		{"user/with\\slashes", "user_with_slashes"},
		{"user?with*wildcards", "user_with_wildcards"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		raw       string
		wantToken string
		wantErr   bool
	}{
		{"3", "3x3", false},
		{"4", "4x4", false},
		{"5", "5x5", false},
		{"10", "10x10", false},
		{"7", "", true},
		{"", "", true},
		{"4x4", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			size, err := ParseSize(tt.raw)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("ParseSize(%q) error = %v, want *ValidationError", tt.raw, err)
				}
				if verr.Field != "size" {
					t.Errorf("Field = %q, want %q", verr.Field, "size")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) unexpected error: %v", tt.raw, err)
			}
			if got := size.Token(); got != tt.wantToken {
				t.Errorf("Token() = %q, want %q", got, tt.wantToken)
			}
		})
	}
}

func TestSize_Premium(t *testing.T) {
	if !Size10.Premium() {
		t.Error("Size10 should be premium")
	}
	for _, s := range []Size{Size3, Size4, Size5} {
		if s.Premium() {
			t.Errorf("%d should not be premium", s)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		raw          string
		allowOverall bool
		want         Period
		wantErr      bool
	}{
		{"7d", true, "7day", false},
		{"1m", true, "1month", false},
		{"3m", true, "3month", false},
		{"6m", true, "6month", false},
		{"12m", true, "12month", false},
		{"all", true, "overall", false},
		{"all", false, "", true},
		{"2w", true, "", true},
		{"1d", true, "", true},
		{"", true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePeriod(tt.raw, tt.allowOverall)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != "period" {
					t.Fatalf("ParsePeriod(%q) error = %v, want period ValidationError", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPeriodToken_DigitSuffix(t *testing.T) {
	for _, raw := range PeriodOptions(false) {
		got := string(periodToken(raw))
		digits := raw[:len(raw)-1]
		var want string
		switch raw[len(raw)-1] {
		case 'd':
			want = digits + "day"
		case 'm':
			want = digits + "month"
		}
		if got != want {
			t.Errorf("periodToken(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestPeriod_Shorthand(t *testing.T) {
	for _, raw := range PeriodOptions(true) {
		p, err := ParsePeriod(raw, true)
		if err != nil {
			t.Fatal(err)
		}
		if p.Shorthand() != raw {
			t.Errorf("Shorthand() = %q, want %q", p.Shorthand(), raw)
		}
	}
}

func TestParseFlag(t *testing.T) {
	if on, err := ParseFlag("caption", "t"); err != nil || !on {
		t.Errorf("ParseFlag(t) = %v, %v", on, err)
	}
	if on, err := ParseFlag("caption", "f"); err != nil || on {
		t.Errorf("ParseFlag(f) = %v, %v", on, err)
	}

	_, err := ParseFlag("playcount", "yes")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "playcount" {
		t.Errorf("Field = %q, want playcount", verr.Field)
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"out.jpg", true},
		{"out.jpeg", true},
		{"out.png", true},
		{"OUT.PNG", true},
		{"dir/out.JpG", true},
		{"out.gif", false},
		{"out", false},
		{"out.jpg.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImageFile(tt.path); got != tt.want {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewCollageRequest_GeneratedDestination(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 45, 1, 0, time.Local)
	cfg := &RequestConfig{AllowOverall: true, Now: func() time.Time { return at }}

	dir := t.TempDir()
	req, err := NewCollageRequest(Input{
		Username: "alice", Size: "4", Period: "1m",
		Caption: "t", Playcount: "f", Dir: dir + string(filepath.Separator),
	}, cfg)
	if err != nil {
		t.Fatalf("NewCollageRequest failed: %v", err)
	}

	want := filepath.Join(dir, "alice_1month_4x4_2024-05-01_134501.jpg")
	if req.Destination != want {
		t.Errorf("Destination = %q, want %q", req.Destination, want)
	}
	if !req.ShowCaption || req.ShowPlaycount {
		t.Errorf("flags = (%v, %v), want (true, false)", req.ShowCaption, req.ShowPlaycount)
	}
}

func TestGeneratedFileName_TimestampParses(t *testing.T) {
	name := GeneratedFileName("alice", PeriodWeek, Size3, time.Now())

	pattern := regexp.MustCompile(`^alice_7day_3x3_(\d{4}-\d{2}-\d{2}_\d{6})\.jpg$`)
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		t.Fatalf("GeneratedFileName = %q, does not match %s", name, pattern)
	}
	if _, err := time.Parse(TimestampLayout, m[1]); err != nil {
		t.Errorf("timestamp %q does not parse: %v", m[1], err)
	}
}

func TestNewCollageRequest_CustomFileVerbatim(t *testing.T) {
	for _, file := range []string{"out.png", "some/dir/out.jpg", "OUT.JPEG"} {
		req, err := NewCollageRequest(Input{
			Username: "alice", Size: "5", Period: "7d",
			Caption: "f", Playcount: "f", Dir: "/ignored", File: file,
		}, nil)
		if err != nil {
			t.Fatalf("NewCollageRequest(%q) failed: %v", file, err)
		}
		if req.Destination != file {
			t.Errorf("Destination = %q, want %q", req.Destination, file)
		}
	}
}

func TestNewCollageRequest_ValidationOrder(t *testing.T) {
	valid := Input{Username: "alice", Size: "4", Period: "1m", Caption: "t", Playcount: "f", Dir: "."}

	tests := []struct {
		name      string
		mutate    func(in *Input)
		wantField string
	}{
		{"bad size wins over bad period", func(in *Input) { in.Size = "6"; in.Period = "9y" }, "size"},
		{"bad period", func(in *Input) { in.Period = "9y" }, "period"},
		{"bad caption", func(in *Input) { in.Caption = "true" }, "caption"},
		{"bad playcount", func(in *Input) { in.Playcount = "x" }, "playcount"},
		{"bad extension", func(in *Input) { in.File = "collage.gif" }, "file"},
		{"missing dir", func(in *Input) { in.Dir = "" }, "dir"},
		{"dir looks like a file", func(in *Input) { in.Dir = "collage.jpg" }, "dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			req, err := NewCollageRequest(in, nil)
			if req != nil {
				t.Errorf("expected nil request, got %+v", req)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	_, err := ParseSize("7")
	msg := err.Error()
	for _, want := range []string{`invalid size "7"`, "3, 4, 5, 10", "premium"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}
}
