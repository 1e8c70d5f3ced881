package io

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/opencog/cogexp/server/strcoll"
	"github.com/pkg/errors"
)

// DiskWriter writes files to disk, creating or truncating them.
type DiskWriter struct{}

func (_ DiskWriter) WriteToFile(filename string, content []byte) error {
	return ioutil.WriteFile(filename, content, 0644)
}

// creates a data directory for the given user with an empty .defs file
// used to keep name definitions across sessions
func Bootstrap(usr string) error {
	if bootstrapped(usr) {
		return nil
	}
	err := os.MkdirAll(filepath.Join(BaseDir(), usr), 0700)
	if err == nil {
		var f *os.File
		f, err = os.Create(defsFile(usr))
		if err == nil {
			f.Close()
		}
	}
	return errors.Wrap(err, "**NOTE**: name definitions made in this session won't be persisted")
}

func bootstrapped(usr string) bool {
	_, err := os.Stat(defsFile(usr))
	return err == nil
}

func defsFile(usr string) string {
	return filepath.Join(BaseDir(), usr, ".defs")
}

// LoadDefs reads the name definitions of a user, one per line: the name followed by what it expands to.
func LoadDefs(usr string) map[string][]string {
	defs := make(map[string][]string)
	b, _ := ioutil.ReadFile(defsFile(usr))
	if len(b) > 0 {
		for _, line := range strings.Split(string(b), "\n") {
			token := strings.Fields(line)
			if len(strcoll.Rest(1, token)) > 0 {
				defs[token[0]] = token[1:]
			}
		}
	}
	return defs
}

// StoreDefs overwrites the name definitions of a user, sorted by name.
func StoreDefs(usr string, writer FileWriter, defs map[string][]string) error {
	keys := make([]string, 0, len(defs))
	for k := range defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(" ")
		buf.WriteString(strings.Join(defs[k], " "))
		buf.WriteString("\n")
	}
	return writer.WriteToFile(defsFile(usr), buf.Bytes())
}

// BaseDir is where per user data is kept, $HOME/.cogexp
func BaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cogexp")
}
