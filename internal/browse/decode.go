package browse

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/normalize"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

var ErrEmptyPayload = errors.New("browse payload is empty")

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatXML:
		return FormatXML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown browse format %q", value)
	}
}

// Decode reads a browse response. With FormatAuto the first non-space byte
// picks the decoder: '<' is XML, anything else JSON.
func Decode(r io.Reader, format Format) ([]listing.Entry, error) {
	br := bufio.NewReader(r)
	if format == FormatAuto || format == "" {
		detected, err := sniff(br)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatXML:
		return decodeXML(br)
	case FormatJSON:
		return decodeJSON(br)
	default:
		return nil, fmt.Errorf("unknown browse format %q", format)
	}
}

func sniff(br *bufio.Reader) (Format, error) {
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return "", ErrEmptyPayload
		}
		if err != nil {
			return "", err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return "", err
		}
		if b == '<' {
			return FormatXML, nil
		}
		return FormatJSON, nil
	}
}

type xmlRoot struct {
	XMLName  xml.Name     `xml:"root"`
	Elements []xmlElement `xml:"element"`
}

type xmlElement struct {
	Type      string `xml:"type,attr"`
	Size      string `xml:"size,attr"`
	Date      string `xml:"date,attr"`
	Path      string `xml:"path,attr"`
	Name      string `xml:"name,attr"`
	Extension string `xml:"extension,attr"`
}

func decodeXML(r io.Reader) ([]listing.Entry, error) {
	var root xmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode browse xml: %w", err)
	}

	entries := make([]listing.Entry, 0, len(root.Elements))
	for _, el := range root.Elements {
		entry := listing.Entry{
			Type:      el.Type,
			Name:      el.Name,
			Size:      parseSize(el.Size),
			Date:      optional(el.Date),
			Path:      optional(el.Path),
			Extension: optional(el.Extension),
		}
		entries = append(entries, entry.WithExtension())
	}
	return entries, nil
}

type jsonRoot struct {
	Elements []jsonElement `json:"element"`
}

type jsonElement struct {
	Type             string `json:"type"`
	Path             string `json:"path"`
	Name             string `json:"name"`
	URI              string `json:"uri"`
	Size             *int64 `json:"size"`
	ModificationTime *int64 `json:"modification_time"`
	Extension        string `json:"extension"`
}

func decodeJSON(r io.Reader) ([]listing.Entry, error) {
	var root jsonRoot
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode browse json: %w", err)
	}

	entries := make([]listing.Entry, 0, len(root.Elements))
	for _, el := range root.Elements {
		path := el.Path
		if path == "" && el.URI != "" {
			path = normalize.PathFromURI(el.URI)
		}
		entry := listing.Entry{
			Type:      el.Type,
			Name:      el.Name,
			Size:      el.Size,
			Date:      formatModTime(el.ModificationTime),
			Path:      optional(path),
			Extension: optional(el.Extension),
		}
		if entry.Name == "" && path != "" {
			entry.Name = normalize.BaseName(path)
		}
		entries = append(entries, entry.WithExtension())
	}
	return entries, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// parseSize drops sizes the server could not report, leaving them absent.
func parseSize(value string) *int64 {
	if value == "" {
		return nil
	}
	size, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil
	}
	return &size
}

// RFC 3339 in UTC keeps lexical order equal to chronological order.
func formatModTime(unix *int64) *string {
	if unix == nil {
		return nil
	}
	formatted := time.Unix(*unix, 0).UTC().Format(time.RFC3339)
	return &formatted
}
