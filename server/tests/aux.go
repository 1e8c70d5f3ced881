package tests

import (
	"strings"

	"github.com/opencog/cogexp/server/api/io"
)

func WithoutColors(s string) string {
	for _, c := range io.Colors {
		s = strings.Replace(s, c, "", -1)
	}
	return s
}

// MockFileWriter keeps in memory the last file written.
type MockFileWriter struct {
	name string
	Data string
	Err  error
}

func (mfw *MockFileWriter) WriteToFile(name string, data []byte) error {
	if mfw.Err != nil {
		return mfw.Err
	}
	mfw.name = name
	mfw.Data = string(data)
	return nil
}

func (mfw MockFileWriter) HasBeenWritenTo() bool {
	return mfw.name != ""
}

func (mfw MockFileWriter) Name() string {
	return mfw.name
}
