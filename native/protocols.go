package native

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mikaelmello/rawsock/core"
)

// ProtocolFile is a protocol directory backed by a protocols(5) database. The file is read on
// every query so edits are picked up.
type ProtocolFile struct {
	path string
}

// NewProtocolFile returns a directory reading the database at path.
func NewProtocolFile(path string) *ProtocolFile {
	return &ProtocolFile{path: path}
}

// ProtocolByName looks up a protocol by its official name or one of its aliases.
func (f *ProtocolFile) ProtocolByName(name string) (core.Protocol, bool, error) {
	protocols, err := f.Protocols()
	if err != nil {
		return core.Protocol{}, false, err
	}

	for _, p := range protocols {
		if p.Name == name {
			return p, true, nil
		}
		for _, alias := range p.Aliases {
			if alias == name {
				return p, true, nil
			}
		}
	}
	return core.Protocol{}, false, nil
}

// ProtocolByNumber looks up the first protocol registered with number.
func (f *ProtocolFile) ProtocolByNumber(number int) (core.Protocol, bool, error) {
	protocols, err := f.Protocols()
	if err != nil {
		return core.Protocol{}, false, err
	}

	for _, p := range protocols {
		if p.Number == number {
			return p, true, nil
		}
	}
	return core.Protocol{}, false, nil
}

// Protocols lists every entry of the database in file order.
func (f *ProtocolFile) Protocols() ([]core.Protocol, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, wrap("getprotoent", err)
	}
	defer file.Close()

	return parseProtocols(file)
}

// parseProtocols reads "name number [aliases...] [# comment]" lines, skipping malformed ones.
func parseProtocols(r io.Reader) ([]core.Protocol, error) {
	protocols := []core.Protocol{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		number, err := strconv.Atoi(fields[1])
		if err != nil || number < 0 || number > 255 {
			continue
		}

		protocols = append(protocols, core.Protocol{
			Name:    fields[0],
			Aliases: fields[2:],
			Number:  number,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, wrap("getprotoent", err)
	}
	return protocols, nil
}
