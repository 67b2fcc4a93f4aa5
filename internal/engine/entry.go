package engine

// EntryType identifies the kind of source entry.
type EntryType int

const (
	File EntryType = iota
	Dir
)

func (t EntryType) String() string {
	switch t {
	case File:
		return "file"
	case Dir:
		return "dir"
	default:
		return "unknown"
	}
}

// SourceMode selects how the input is shaped.
type SourceMode int

const (
	// ModeDirectory packs every file below a directory under its relative path.
	ModeDirectory SourceMode = iota
	// ModeArchive packs a single .love archive as /game.love.
	ModeArchive
)

func (m SourceMode) String() string {
	if m == ModeArchive {
		return "archive"
	}
	return "directory"
}

// ArchiveVirtualPath is the fixed virtual path of a single-archive package.
const ArchiveVirtualPath = "/game.love"

// SourceEntry is one file or directory discovered by the collector.
type SourceEntry struct {
	AbsPath     string
	VirtualPath string // forward-slash, rooted at "/"
	Size        uint64 // files only, from stat
	Type        EntryType
}

// Source is the ordered collector output for one packaging run.
type Source struct {
	Root    string
	Entries []SourceEntry
	Mode    SourceMode
}

// Files returns the file entries in collector order.
func (s Source) Files() []SourceEntry {
	return s.filter(File)
}

// Dirs returns the directory entries in collector order.
func (s Source) Dirs() []SourceEntry {
	return s.filter(Dir)
}

// TotalSize sums the stat sizes of all file entries.
func (s Source) TotalSize() uint64 {
	var total uint64
	for _, e := range s.Entries {
		if e.Type == File {
			total += e.Size
		}
	}
	return total
}

func (s Source) filter(t EntryType) []SourceEntry {
	out := make([]SourceEntry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
