package models

// Stat is the classification of a single filesystem entry as observed
// without following symbolic links: a symlink is always reported as a Link,
// never as its target's type. Exactly three implementations exist. All of
// them are small comparable values, safe to copy and to use as map keys.
type Stat interface {
	// StatPath returns the path of the entry this stat describes.
	StatPath() string
	String() string
	isStat()
}

// Link is a symbolic link entry.
type Link struct {
	Path string
}

// Dir is a directory entry.
type Dir struct {
	Path string
}

// File is a regular file entry.
type File struct {
	Path string
}

func (s Link) StatPath() string { return s.Path }
func (s Dir) StatPath() string  { return s.Path }
func (s File) StatPath() string { return s.Path }

func (s Link) String() string { return "link:" + s.Path }
func (s Dir) String() string  { return "dir:" + s.Path }
func (s File) String() string { return "file:" + s.Path }

func (Link) isStat() {}
func (Dir) isStat()  {}
func (File) isStat() {}
