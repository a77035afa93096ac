package pictable

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildTable(t *testing.T) {
	type args struct {
		rawText        string
		separator      string
		maxFieldLength int
	}
	tests := []struct {
		name     string
		args     args
		wantCols []string
		wantRows []Row
	}{
		{
			name:     "multi line",
			args:     args{rawText: "a,b,c\n1,2,3\n4,5,6", separator: ","},
			wantCols: []string{"a", "b", "c"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "2", "3"}},
				{Index: 2, Values: []string{"4", "5", "6"}},
			},
		},
		{
			name:     "single line synthesizes numeric header",
			args:     args{rawText: "1,2,3", separator: ","},
			wantCols: []string{"0", "1", "2"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "2", "3"}},
			},
		},
		{
			name:     "single line with digit separator",
			args:     args{rawText: "a1b", separator: "1"},
			wantCols: []string{"0", "1"},
			wantRows: []Row{
				{Index: 1, Values: []string{"a", "b"}},
			},
		},
		{
			name:     "CRLF line endings",
			args:     args{rawText: "a;b\r\n1;2\r\n3;4", separator: ";"},
			wantCols: []string{"a", "b"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "2"}},
				{Index: 2, Values: []string{"3", "4"}},
			},
		},
		{
			name:     "empty lines discarded, indices stay consecutive",
			args:     args{rawText: "a,b\n\n1,2\n\n\n3,4\n", separator: ","},
			wantCols: []string{"a", "b"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "2"}},
				{Index: 2, Values: []string{"3", "4"}},
			},
		},
		{
			name:     "empty fields preserved",
			args:     args{rawText: "a,,c\n1,,", separator: ","},
			wantCols: []string{"a", "", "c"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "", ""}},
			},
		},
		{
			name:     "field truncation appends ellipsis",
			args:     args{rawText: "col\n33333333333333", separator: ",", maxFieldLength: 7},
			wantCols: []string{"col"},
			wantRows: []Row{
				{Index: 1, Values: []string{"3333333" + Ellipsis}},
			},
		},
		{
			name:     "truncation counts runes",
			args:     args{rawText: "col\näöüäöüäöü", separator: ",", maxFieldLength: 3},
			wantCols: []string{"col"},
			wantRows: []Row{
				{Index: 1, Values: []string{"äöü" + Ellipsis}},
			},
		},
		{
			name:     "tab separator",
			args:     args{rawText: "a\tb\n1\t2", separator: "\t"},
			wantCols: []string{"a", "b"},
			wantRows: []Row{
				{Index: 1, Values: []string{"1", "2"}},
			},
		},
		{
			name:     "empty input",
			args:     args{rawText: "", separator: ","},
			wantCols: nil,
			wantRows: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := BuildTable(tt.args.rawText, tt.args.separator, tt.args.maxFieldLength)

			var gotCols []string
			for _, col := range table.Columns {
				gotCols = append(gotCols, col.Name)
			}
			if !reflect.DeepEqual(gotCols, tt.wantCols) {
				t.Errorf("BuildTable() columns = %#v, want %#v", gotCols, tt.wantCols)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("BuildTable() rows = %#v, want %#v", table.Rows, tt.wantRows)
			}
			if table.Separator != tt.args.separator {
				t.Errorf("BuildTable() separator = %q, want %q", table.Separator, tt.args.separator)
			}
		})
	}
}

func TestBuildTableIdempotent(t *testing.T) {
	const rawText = "a,b,c\n1,2,3\n4,5,6\nlongvaluelongvalue,x,"
	first := BuildTable(rawText, ",", 10)
	second := BuildTable(rawText, ",", 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildTable() not deterministic:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestRowValue(t *testing.T) {
	row := Row{Index: 1, Values: []string{"a", "b"}}
	if got := row.Value(0); got != "a" {
		t.Errorf("Value(0) = %q, want %q", got, "a")
	}
	if got := row.Value(2); got != "" {
		t.Errorf("Value(2) = %q, want empty string for missing cell", got)
	}
	if got := row.Value(-1); got != "" {
		t.Errorf("Value(-1) = %q, want empty string", got)
	}
}

func TestTableIsEmpty(t *testing.T) {
	if !(&Table{}).IsEmpty() {
		t.Error("table without columns and rows should be empty")
	}
	if !(&Table{Columns: []Column{{Name: "a"}}}).IsEmpty() {
		t.Error("table without rows should be empty")
	}
	if !(&Table{Rows: []Row{{Index: 1}}}).IsEmpty() {
		t.Error("table without columns should be empty")
	}
	full := BuildTable("a\n1", ",", 0)
	if full.IsEmpty() {
		t.Error("table with columns and rows should not be empty")
	}
	if !(*Table)(nil).IsEmpty() {
		t.Error("nil table should be empty")
	}
}

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name    string
		rawText string
		want    string
	}{
		{name: "commas", rawText: "a,b,c\n1,2,3", want: ","},
		{name: "semicolons", rawText: "a;b;c\n1;2;3", want: ";"},
		{name: "tabs", rawText: "a\tb\tc\n1\t2\t3", want: "\t"},
		{name: "mixed, semicolons win", rawText: "a;b,c;d\n1;2;3", want: ";"},
		{name: "none defaults to comma", rawText: "abc\ndef", want: ","},
		{name: "tie defaults to comma", rawText: "a,b;c\n", want: ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSeparator(tt.rawText); got != tt.want {
				t.Errorf("DetectSeparator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeField(t *testing.T) {
	got := sanitizeField("a b�c")
	if got != "a b c" {
		t.Errorf("sanitizeField() = %q, want %q", got, "a b c")
	}
	if strings.ContainsRune(got, ' ') {
		t.Error("sanitizeField() kept a no-break space")
	}
}
