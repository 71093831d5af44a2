package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-recipefmt/internal/yamlutil"
)

type pipelineConfig struct {
	Model   string  `yaml:"model"`
	Scale   float64 `yaml:"scale"`
	Group   bool    `yaml:"group"`
	Timeout string  `yaml:"timeout"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		dest    any
		want    pipelineConfig
		wantErr error
	}{
		{
			name: "valid",
			data: "model: gpt-4o\nscale: 1.5\ngroup: true\ntimeout: 30s\n",
			dest: &pipelineConfig{},
			want: pipelineConfig{Model: "gpt-4o", Scale: 1.5, Group: true, Timeout: "30s"},
		},
		{
			name: "unknown field ignored",
			data: "model: m\nextra: 1\n",
			dest: &pipelineConfig{},
			want: pipelineConfig{Model: "m"},
		},
		{name: "empty", data: "", dest: &pipelineConfig{}, wantErr: yamlutil.ErrEmptyInput},
		{name: "nil destination", data: "model: m", dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal([]byte(tt.data), tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if got := *tt.dest.(*pipelineConfig); got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshal_Malformed(t *testing.T) {
	t.Parallel()

	var cfg pipelineConfig
	if err := yamlutil.Unmarshal([]byte("scale: [1, 2"), &cfg); err == nil {
		t.Error("Unmarshal() accepted malformed YAML")
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Unknown fields rejected
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var cfg pipelineConfig
	if err := yamlutil.UnmarshalStrict([]byte("model: m\ngroup: true\n"), &cfg); err != nil {
		t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
	}
	if cfg.Model != "m" || !cfg.Group {
		t.Errorf("UnmarshalStrict() = %+v", cfg)
	}

	err := yamlutil.UnmarshalStrict([]byte("model: m\nmodle: typo\n"), &pipelineConfig{})
	if !errors.Is(err, yamlutil.ErrUnknownField) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrUnknownField", err)
	}
	if err != nil && !strings.Contains(err.Error(), "modle") {
		t.Errorf("error does not name the field: %v", err)
	}
}

func TestUnmarshalStrict_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("model: " + strings.Repeat("x", yamlutil.MaxInputSize))
	if err := yamlutil.UnmarshalStrict(data, &pipelineConfig{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	in := pipelineConfig{Model: "gpt-4o", Scale: 1.5, Group: true, Timeout: "1m"}
	data, err := yamlutil.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	for _, want := range []string{"model: gpt-4o", "scale: 1.5", "group: true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, data)
		}
	}

	var back pipelineConfig
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("UnmarshalStrict(Marshal()) error = %v", err)
	}
	if back != in {
		t.Errorf("decoded = %+v, want %+v", back, in)
	}
}
