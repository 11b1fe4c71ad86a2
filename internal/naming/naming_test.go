package naming

import (
	"testing"

	"github.com/leapstack-labs/mdschema/internal/config"
)

func defaultNamer() *Namer {
	cfg := config.Default()
	return New(&cfg.Naming)
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		target string
		want   string
	}{
		{"base equals target", "PersonId", "Person", "Person"},
		{"base equals target snake", "person_id", "Person", "Person"},
		{"preserved role", "OwnerId", "User", "Owner"},
		{"preserved audit role", "CreatedById", "User", "CreatedBy"},
		{"by suffix kept", "ReviewedBy", "User", "ReviewedBy"},
		{"compound role suffix", "AssignedManagerId", "Person", "AssignedManager"},
		{"target substring composes", "ParentPersonId", "Person", "ParentPerson"},
		{"snake substring composes", "billing_address_id", "Address", "BillingAddress"},
		{"bare agent noun falls back to target", "AuthorId", "Person", "Person"},
		{"unmatched base falls back to target", "FollowerId", "User", "User"},
	}

	n := defaultNamer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Navigation(tt.field, tt.target); got != tt.want {
				t.Errorf("Navigation(%q, %q) = %q, want %q", tt.field, tt.target, got, tt.want)
			}
		})
	}
}

func TestNavigationPreferDescriptive(t *testing.T) {
	cfg := config.Default()
	cfg.Naming.PreferDescriptive = true
	n := New(&cfg.Naming)

	// Opting in keeps non-trivial base names instead of collapsing to
	// the target model name.
	tests := []struct {
		field  string
		target string
		want   string
	}{
		{"FollowerId", "User", "Follower"},
		{"AuthorId", "Person", "Author"},
		{"SpouseId", "Person", "Spouse"},
	}
	for _, tt := range tests {
		if got := n.Navigation(tt.field, tt.target); got != tt.want {
			t.Errorf("Navigation(%q, %q) = %q, want %q", tt.field, tt.target, got, tt.want)
		}
	}
}

func TestNavigationPatternTables(t *testing.T) {
	cfg := config.Default()
	cfg.Naming.Patterns = map[string]string{"LegacyRef": "Legacy"}
	cfg.Naming.PrefixPatterns = map[string]string{"Ext": "External"}
	n := New(&cfg.Naming)

	if got := n.Navigation("LegacyRef", "Thing"); got != "Legacy" {
		t.Errorf("exact pattern: got %q", got)
	}
	if got := n.Navigation("ExtSystemId", "System"); got != "External" {
		t.Errorf("prefix pattern: got %q", got)
	}
}

func TestBackReference(t *testing.T) {
	n := defaultNamer()

	tests := []struct {
		field  string
		source string
		want   string
	}{
		{"UserId", "Order", "Orders"},
		{"FollowerId", "Follow", "Followers"},
		{"FollowingId", "Follow", "Followings"},
		{"ManagerId", "Person", "People"},
	}
	for _, tt := range tests {
		if got := n.BackReference(tt.field, tt.source); got != tt.want {
			t.Errorf("BackReference(%q, %q) = %q, want %q", tt.field, tt.source, got, tt.want)
		}
	}
}

func TestStripIDSuffix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"UserId", "User"},
		{"UserID", "User"},
		{"user_id", "user"},
		{"Id", "Id"},
		{"Name", "Name"},
	}
	for _, tt := range tests {
		if got := StripIDSuffix(tt.in); got != tt.want {
			t.Errorf("StripIDSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Order", "Orders"},
		{"Category", "Categories"},
		{"Box", "Boxes"},
		{"Status", "Statuses"},
		{"Branch", "Branches"},
		{"Person", "People"},
		{"Child", "Children"},
		{"child", "children"},
		{"Day", "Days"},
	}
	for _, tt := range tests {
		if got := Pluralize(tt.in); got != tt.want {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
