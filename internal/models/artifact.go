package models

import (
	"strings"
	"time"
)

// Kind distinguishes stored artifact flavours.
type Kind string

const (
	KindHTML Kind = "html"
	KindPDF  Kind = "pdf"
	// KindOther marks filenames outside the two served extensions. The store
	// never creates or lists such files.
	KindOther Kind = "other"
)

// Ext returns the filename extension including the dot.
func (k Kind) Ext() string {
	switch k {
	case KindHTML:
		return ".html"
	case KindPDF:
		return ".pdf"
	default:
		return ""
	}
}

// MIME returns the content type artifacts of this kind are served with.
func (k Kind) MIME() string {
	switch k {
	case KindHTML:
		return "text/html; charset=utf-8"
	case KindPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// KindForName derives the artifact kind from a filename.
func KindForName(name string) Kind {
	switch {
	case strings.HasSuffix(name, ".html"):
		return KindHTML
	case strings.HasSuffix(name, ".pdf"):
		return KindPDF
	default:
		return KindOther
	}
}

// Artifact describes one stored file. Identity is the (id, kind) pair encoded
// in the filename; there is no separate metadata index.
type Artifact struct {
	Name      string
	Kind      Kind
	SizeBytes int64
	CreatedAt time.Time
}

// Age reports how long the artifact has existed relative to now.
func (a Artifact) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}
