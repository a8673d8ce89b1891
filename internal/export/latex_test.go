package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gab-dev-code/solarix-datasheet/internal/model"
)

func TestSanitizeSeriesToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1745x670-SOLARIX-s54p1", "1745x670-SOLARIX-s54p1"},
		{"SOLARIX ME 855", `SOLARIX\_ME\_855`},
		{"50% MORE", `50\%\_MORE`},
		{"A&B_C", `A\&B\_C`},
		{"X#1", `X\#1`},
	}
	for _, tc := range cases {
		if got := SanitizeSeriesToken(tc.in); got != tc.want {
			t.Errorf("SanitizeSeriesToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileSafeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1745x670-SOLARIX-s54p1", "1745x670-SOLARIX-s54p1"},
		{"name with spaces", "name_with_spaces"},
		{"weird/|:chars", "weirdchars"},
	}
	for _, tc := range cases {
		if got := FileSafeName(tc.in); got != tc.want {
			t.Errorf("FileSafeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWriteFragment(t *testing.T) {
	dir := t.TempDir()
	row := model.PanelRow{
		Series: "1745x670-SOLARIX ME-s54p1",
		Pmax:   455, Voc: 49.5, Vmp: 41.6, Isc: 11.2, Imp: 10.9,
		Eff: 21.3, Weight: 23.5, Temp: 45,
	}

	if err := WriteFragment(dir, row); err != nil {
		t.Fatalf("write fragment: %v", err)
	}

	macro, err := os.ReadFile(filepath.Join(dir, "series.tex"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(macro), `\def\seriesname{1745x670-SOLARIX\_ME-s54p1}`) {
		t.Errorf("unexpected macro content: %s", macro)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + one data row, got %d lines", len(lines))
	}
	if lines[0] != "pmax,voc,vmp,isc,imp,eff,weight,t" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if lines[1] != "455.0,49.50,41.60,11.20,10.90,21.3,23.5,45.0" {
		t.Errorf("unexpected data row: %s", lines[1])
	}
}

func TestCompile_MissingBinary(t *testing.T) {
	_, err := Compile(context.Background(), t.TempDir(), "template.tex", "definitely-not-a-tex-binary")
	if err == nil {
		t.Fatal("expected error for missing typesetting binary")
	}
}

func TestCompile_FakeEngineProducesPDF(t *testing.T) {
	// Stand in for xelatex with a shell script that writes template.pdf,
	// so the success path is covered without a TeX installation.
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-tex.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho fake > template.pdf\n"), 0755); err != nil {
		t.Fatal(err)
	}

	pdf, err := Compile(context.Background(), dir, "template.tex", script)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if filepath.Base(pdf) != "template.pdf" {
		t.Errorf("unexpected pdf path: %s", pdf)
	}
	if _, err := os.Stat(pdf); err != nil {
		t.Errorf("pdf should exist: %v", err)
	}
}
