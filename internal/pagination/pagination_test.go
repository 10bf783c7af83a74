package pagination

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name      string
		req       PageRequest
		want      []int
		wantPages int
	}{
		{"defaults", PageRequest{}, []int{1, 2, 3, 4, 5}, 1},
		{"first page", PageRequest{Page: 1, PageSize: 2}, []int{1, 2}, 3},
		{"last partial page", PageRequest{Page: 3, PageSize: 2}, []int{5}, 3},
		{"past the end", PageRequest{Page: 9, PageSize: 2}, []int{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(items, tt.req)
			if len(got.Data) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Data)
			}
			for i := range tt.want {
				if got.Data[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got.Data)
				}
			}
			if got.TotalItems != 5 || got.TotalPages != tt.wantPages {
				t.Errorf("expected 5 items in %d pages, got %d in %d", tt.wantPages, got.TotalItems, got.TotalPages)
			}
		})
	}
}

func TestNewPageResponseNeverNil(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 0)
	if resp.Data == nil || resp.TotalPages != 0 {
		t.Errorf("unexpected empty response: %+v", resp)
	}
}
