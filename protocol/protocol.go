// Package protocol defines the types necessary for unmarshalling a
// protocol-specification XML file.
package protocol

import (
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

//go:embed wayland.xml xdg-shell.xml
var files embed.FS

type Protocol struct {
	Name      string `xml:"name,attr"`
	Copyright string `xml:"copyright"`

	Interfaces []Interface `xml:"interface"`
}

// Load decodes a protocol description from r.
func Load(r io.Reader) (proto Protocol, err error) {
	d := xml.NewDecoder(r)
	err = d.Decode(&proto)
	return proto, err
}

// LoadFile decodes the protocol description stored in the file at
// path.
func LoadFile(path string) (proto Protocol, err error) {
	file, err := os.Open(path)
	if err != nil {
		return proto, err
	}
	defer file.Close()

	return Load(file)
}

func loadEmbedded(name string) (Protocol, error) {
	file, err := files.Open(name)
	if err != nil {
		return Protocol{}, err
	}
	defer file.Close()

	return Load(file)
}

// Wayland returns the bundled description of the subset of the core
// protocol that this module implements.
func Wayland() (Protocol, error) {
	return loadEmbedded("wayland.xml")
}

// XDGShell returns the bundled description of the subset of the
// xdg-shell protocol that this module implements.
func XDGShell() (Protocol, error) {
	return loadEmbedded("xdg-shell.xml")
}

// Interface returns the interface with the given name.
func (p Protocol) Interface(name string) (Interface, error) {
	for _, i := range p.Interfaces {
		if i.Name == name {
			return i, nil
		}
	}
	return Interface{}, fmt.Errorf("protocol %v has no interface %q", p.Name, name)
}

type Interface struct {
	Name        string      `xml:"name,attr"`
	Version     int         `xml:"version,attr"`
	Description Description `xml:"description"`

	Requests []Op   `xml:"request"`
	Events   []Op   `xml:"event"`
	Enums    []Enum `xml:"enum"`
}

// Opcode returns the opcode of the named op in ops, which is its
// position in declaration order.
func Opcode(ops []Op, name string) (int, bool) {
	for i, op := range ops {
		if op.Name == name {
			return i, true
		}
	}
	return -1, false
}

type Description struct {
	Summary string `xml:"summary,attr"`
	Full    string `xml:",chardata"`
}

type Op struct {
	Name        string      `xml:"name,attr"`
	Since       int         `xml:"since,attr"`
	Description Description `xml:"description"`

	Args []Arg `xml:"arg"`
}

type Arg struct {
	Name    string `xml:"name,attr"`
	Summary string `xml:"summary,attr"`

	Type      string `xml:"type,attr"`
	Interface string `xml:"interface,attr"`
	Enum      string `xml:"enum,attr"`
	AllowNull bool   `xml:"allow-null,attr"`
	Version   int    `xml:"version,attr"`
}

type Enum struct {
	Name        string      `xml:"name,attr"`
	Bitfield    bool        `xml:"bitfield,attr"`
	Description Description `xml:"description"`

	Entries []Entry `xml:"entry"`
}

type Entry struct {
	Name    string `xml:"name,attr"`
	Summary string `xml:"summary,attr"`
	Value   string `xml:"value,attr"`
}

func (e Entry) Int() (int, error) {
	v, err := strconv.ParseInt(e.Value, 0, 0)
	return int(v), err
}
