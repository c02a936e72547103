// Package image loads Intcode program images.
//
// A program image is a single line of comma separated decimal integers.
// Negative values are allowed and surrounding whitespace is ignored.
package image

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Image holds the initial tape contents of a program.
type Image []int64

// Error describes a malformed field in a program image.
type Error struct {
	Field int    // Zero based field index.
	Text  string // Offending field text.
	Err   error  // Underlying conversion error.
}

func (e *Error) Error() string {
	return fmt.Sprintf("field %d: invalid integer %q", e.Field, e.Text)
}

// Unwrap returns the underlying conversion error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Parse parses the textual form of a program image.
// Empty text is rejected, so the empty image does not survive a round trip.
func Parse(text string) (Image, error) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return nil, errors.New("empty program image")
	}

	fields := strings.Split(text, ",")
	img := make(Image, len(fields))

	for i, field := range fields {
		field = strings.TrimSpace(field)

		v, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, &Error{Field: i, Text: field, Err: err}
		}

		img[i] = v
	}

	return img, nil
}

// Load reads and parses the program image in the given file.
func Load(file string) (Image, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}

	img, err := Parse(string(data))
	if err != nil {
		return nil, errors.Wrapf(err, "Load %s", file)
	}

	return img, nil
}

// Clone returns an independent copy of the image.
func (img Image) Clone() Image {
	c := make(Image, len(img))
	copy(c, img)
	return c
}

// String returns the comma separated form of the image.
// Parsing the result yields the same image.
func (img Image) String() string {
	var sb strings.Builder

	for i, v := range img {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}

	return sb.String()
}
