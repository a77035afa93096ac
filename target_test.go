package pictable

import "testing"

func TestExportTarget(t *testing.T) {
	tests := []struct {
		target        ExportTarget
		wantValid     bool
		wantExtension string
		wantMediaType string
	}{
		{target: RasterImage, wantValid: true, wantExtension: "png", wantMediaType: "image/png"},
		{target: PaginatedDocument, wantValid: true, wantExtension: "pdf", wantMediaType: "application/pdf"},
		{target: ExportTarget(99), wantValid: false, wantExtension: "", wantMediaType: ""},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			if got := tt.target.Valid(); got != tt.wantValid {
				t.Errorf("Valid() = %v, want %v", got, tt.wantValid)
			}
			if got := tt.target.Extension(); got != tt.wantExtension {
				t.Errorf("Extension() = %q, want %q", got, tt.wantExtension)
			}
			if got := tt.target.MediaType(); got != tt.wantMediaType {
				t.Errorf("MediaType() = %q, want %q", got, tt.wantMediaType)
			}
		})
	}
}
