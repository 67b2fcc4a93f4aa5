package engine

import "path"

// DirectoryOp asks the virtual filesystem to create Name under Parent.
// Parent is "/" or a path created by an earlier op.
type DirectoryOp struct {
	Parent string
	Name   string
}

// Path returns the virtual path of the directory the op creates.
func (op DirectoryOp) Path() string {
	return path.Join(op.Parent, op.Name)
}

// BuildDirectoryOps converts directory entries, in collector order, into
// creation ops. The collector emits ancestors first, so the ops can be
// applied in sequence without creating parents implicitly.
func BuildDirectoryOps(dirs []SourceEntry) []DirectoryOp {
	ops := make([]DirectoryOp, 0, len(dirs))
	for _, d := range dirs {
		if d.Type != Dir {
			continue
		}
		ops = append(ops, DirectoryOp{
			Parent: path.Dir(d.VirtualPath),
			Name:   path.Base(d.VirtualPath),
		})
	}
	return ops
}
