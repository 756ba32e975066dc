package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		flags   outputFlags
		want    string
		wantErr bool
	}{
		{"default", "art/poster.json", outputFlags{}, "art/poster.out.json", false},
		{"no extension", "poster", outputFlags{}, "poster.out.json", false},
		{"explicit", "poster.json", outputFlags{output: "x.json"}, "x.json", false},
		{"in place", "poster.json", outputFlags{inPlace: true}, "poster.json", false},
		{"both", "poster.json", outputFlags{output: "x.json", inPlace: true}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPath(tt.input, tt.flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("outputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, PNG,,dxf", []string{"svg", "png", "dxf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "art/poster.json", "art/poster"},
		{"out/preview", "poster.json", "out/preview"},
		{"out/preview.svg", "poster.json", "out/preview"},
		{"out/preview.tree.svg", "poster.json", "out/preview"},
		{"out/preview.v2", "poster.json", "out/preview.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestPrefsName(t *testing.T) {
	root := &cobra.Command{Use: appName}
	color := &cobra.Command{Use: "color"}
	blind := &cobra.Command{Use: "blind <document.json>"}
	root.AddCommand(color)
	color.AddCommand(blind)

	if got := prefsName(blind); got != "color-blind" {
		t.Errorf("prefsName() = %q, want %q", got, "color-blind")
	}
	if got := prefsName(color); got != "color" {
		t.Errorf("prefsName() = %q, want %q", got, "color")
	}
}
