package engine

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// AudioSuffixes are the extensions the web runtime decodes as audio.
// Matching is a case-sensitive suffix test on the virtual path.
var AudioSuffixes = []string{".ogg", ".wav", ".mp3", ".flac", ".xm"}

// IsAudio reports whether virtualPath names an audio asset.
func IsAudio(virtualPath string) bool {
	for _, suffix := range AudioSuffixes {
		if strings.HasSuffix(virtualPath, suffix) {
			return true
		}
	}
	return false
}

// FileRecord locates one packaged file inside the blob as [Start, End).
type FileRecord struct {
	Filename string
	Start    uint64
	End      uint64
	Crunched bool
	Audio    bool
}

// Size returns the record's byte length.
func (r FileRecord) Size() uint64 { return r.End - r.Start }

// fileRecordJSON is the loader's wire shape; crunched is numeric there.
type fileRecordJSON struct {
	Filename string `json:"filename"`
	Crunched int    `json:"crunched"`
	Start    uint64 `json:"start"`
	End      uint64 `json:"end"`
	Audio    bool   `json:"audio"`
}

// MarshalJSON encodes the record in the field order the loader expects.
func (r FileRecord) MarshalJSON() ([]byte, error) {
	w := fileRecordJSON{
		Filename: r.Filename,
		Start:    r.Start,
		End:      r.End,
		Audio:    r.Audio,
	}
	if r.Crunched {
		w.Crunched = 1
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the loader's wire shape.
func (r *FileRecord) UnmarshalJSON(data []byte) error {
	var w fileRecordJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = FileRecord{
		Filename: w.Filename,
		Start:    w.Start,
		End:      w.End,
		Crunched: w.Crunched != 0,
		Audio:    w.Audio,
	}
	return nil
}

// Cursor is the running blob offset during manifest construction.
type Cursor uint64

// Place returns the record for an n-byte file starting at c, together with
// the cursor advanced past it. Placing from the zero cursor and threading the
// result through each call yields records with no gaps and no overlap.
func (c Cursor) Place(virtualPath string, n uint64) (FileRecord, Cursor) {
	rec := FileRecord{
		Filename: virtualPath,
		Start:    uint64(c),
		End:      uint64(c) + n,
		Audio:    IsAudio(virtualPath),
	}
	return rec, Cursor(rec.End)
}

// Layout is the ordered record list and the total size it covers.
type Layout struct {
	Records []FileRecord
	Size    uint64
}

// Add places an n-byte file after the last record and returns its record.
func (l *Layout) Add(virtualPath string, n uint64) FileRecord {
	rec, next := Cursor(l.Size).Place(virtualPath, n)
	l.Records = append(l.Records, rec)
	l.Size = uint64(next)
	return rec
}

// PackageManifest describes how to rebuild the file tree from the blob.
type PackageManifest struct {
	PackageUUID       uuid.UUID    `json:"package_uuid"`
	RemotePackageSize uint64       `json:"remote_package_size"`
	Files             []FileRecord `json:"files"`
}

// BuildManifest wraps a finished layout with a package id.
func BuildManifest(id uuid.UUID, layout Layout) PackageManifest {
	files := layout.Records
	if files == nil {
		files = []FileRecord{}
	}
	return PackageManifest{
		PackageUUID:       id,
		RemotePackageSize: layout.Size,
		Files:             files,
	}
}

// JSON returns the compact encoding embedded in the generated loader.
func (m PackageManifest) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ParseManifest decodes a manifest produced by JSON.
func ParseManifest(data []byte) (PackageManifest, error) {
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return PackageManifest{}, err
	}
	return m, nil
}
