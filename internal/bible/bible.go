// Package bible loads open-bible XML files used by the scripture browser.
//
// Files are parsed once per version and cached; all lookups afterwards are
// in-memory. The browser path is book -> chapter -> verses, matching the
// order an operator narrows a passage down.
package bible

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Verse is one numbered verse within a chapter.
type Verse struct {
	Num  int
	Text string
}

// Chapter is a numbered chapter within a book.
type Chapter struct {
	Num    int
	Verses []Verse
}

// Book is a named bible book.
type Book struct {
	Title    string
	Chapters []Chapter
}

// Bible is one fully parsed translation.
type Bible struct {
	Version string
	Books   []Book
}

// FindBook returns the book with the given title, or nil.
func (b *Bible) FindBook(title string) *Book {
	for i := range b.Books {
		if b.Books[i].Title == title {
			return &b.Books[i]
		}
	}
	return nil
}

// FindChapter returns the chapter with the given number, or nil.
func (bk *Book) FindChapter(num int) *Chapter {
	for i := range bk.Chapters {
		if bk.Chapters[i].Num == num {
			return &bk.Chapters[i]
		}
	}
	return nil
}

// xmlBible mirrors the open-bible file layout.
type xmlBible struct {
	XMLName xml.Name  `xml:"bible"`
	Version string    `xml:"version,attr"`
	Books   []xmlBook `xml:"book"`
}

type xmlBook struct {
	Title    string       `xml:"title,attr"`
	Chapters []xmlChapter `xml:"chapter"`
}

type xmlChapter struct {
	Num    int        `xml:"num,attr"`
	Verses []xmlVerse `xml:"verse"`
}

type xmlVerse struct {
	Num  int    `xml:"num,attr"`
	Text string `xml:",chardata"`
}

// Parse decodes one bible XML document.
func Parse(r io.Reader) (*Bible, error) {
	var doc xmlBible
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode bible XML: %w", err)
	}

	b := &Bible{Version: doc.Version}
	for _, xb := range doc.Books {
		book := Book{Title: xb.Title}
		for _, xc := range xb.Chapters {
			chapter := Chapter{Num: xc.Num}
			for _, xv := range xc.Verses {
				chapter.Verses = append(chapter.Verses, Verse{
					Num:  xv.Num,
					Text: strings.TrimSpace(xv.Text),
				})
			}
			book.Chapters = append(book.Chapters, chapter)
		}
		b.Books = append(b.Books, book)
	}
	return b, nil
}

// PassageContent renders selected verses as presentation text, one
// "N. text" line per verse, the format scripture slides are chunked from.
func PassageContent(verses []Verse) string {
	lines := make([]string, 0, len(verses))
	for _, v := range verses {
		lines = append(lines, fmt.Sprintf("%d. %s", v.Num, v.Text))
	}
	return strings.Join(lines, "\n")
}
