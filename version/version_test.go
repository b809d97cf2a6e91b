package version

import "testing"

func TestGetMinorVersion(t *testing.T) {
	if got := GetMinorVersion("0.2.1"); got != "0.2" {
		t.Errorf(`GetMinorVersion("0.2.1") = %q`, got)
	}
	if got := GetMinorVersion("0.2"); got != "0.2" {
		t.Errorf(`GetMinorVersion("0.2") = %q`, got)
	}
}

func TestVersionComparison(t *testing.T) {
	if !IsVersionGreaterThan("0.2.1", "0.2.0") {
		t.Errorf("0.2.1 should be greater than 0.2.0")
	}
	if IsVersionGreaterThan("0.2.0", "0.2.0") {
		t.Errorf("equal versions are not greater")
	}
	if !IsVersionGreaterOrEqualThan("0.2.0", "0.2.0") {
		t.Errorf("equal versions are greater-or-equal")
	}
}

func TestSortVersionList(t *testing.T) {
	versions := []string{"0.2.1", "0.1.0", "0.2.0"}
	SortVersionList(versions)
	want := []string{"0.1.0", "0.2.0", "0.2.1"}
	for i := range want {
		if versions[i] != want[i] {
			t.Fatalf(`Unexpected order %v, want %v`, versions, want)
		}
	}
}
