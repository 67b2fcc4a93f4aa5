package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{want: "ScanStarted", typ: ScanStarted},
		{want: "ScanComplete", typ: ScanComplete},
		{want: "DirQueued", typ: DirQueued},
		{want: "FileStarted", typ: FileStarted},
		{want: "FilePacked", typ: FilePacked},
		{want: "FileSkipped", typ: FileSkipped},
		{want: "BudgetChecked", typ: BudgetChecked},
		{want: "PackageComplete", typ: PackageComplete},
		{want: "PackageFailed", typ: PackageFailed},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeStringUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", Type(999).String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestTypeNamesDistinct(t *testing.T) {
	seen := map[string]Type{}
	for typ := ScanStarted; typ <= PackageFailed; typ++ {
		name := typ.String()
		require.NotEqual(t, "Unknown", name, "type %d has no name", int(typ))
		prev, dup := seen[name]
		assert.False(t, dup, "%s used by %d and %d", name, int(prev), int(typ))
		seen[name] = typ
	}
	assert.Len(t, seen, 9)
}
