package timeseries

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Marshaler   = Point{}
	_ easyjson.Unmarshaler = (*Point)(nil)
)

// MarshalEasyJSON writes the document shape of a point:
// {"timestep":1,"atoms":[{"handle":1,"sti":7}],"scheme":null}
// The scheme key is always present.
func (p Point) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"timestep":`)
	w.Int64(p.Timestep)
	w.RawString(`,"atoms":`)
	if p.Atoms == nil {
		w.RawString("[]")
	} else {
		w.RawByte('[')
		for idx, a := range p.Atoms {
			if idx > 0 {
				w.RawByte(',')
			}
			encodeAtom(w, a)
		}
		w.RawByte(']')
	}
	w.RawString(`,"scheme":`)
	if p.Scheme == nil {
		w.RawString("null")
	} else {
		w.String(*p.Scheme)
	}
	w.RawByte('}')
}

func (p Point) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	p.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

func (p *Point) UnmarshalEasyJSON(in *jlexer.Lexer) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "timestep":
			p.Timestep = in.Int64()
		case "atoms":
			in.Delim('[')
			p.Atoms = make([]Atom, 0)
			for !in.IsDelim(']') {
				var a Atom
				decodeAtom(in, &a)
				p.Atoms = append(p.Atoms, a)
				in.WantComma()
			}
			in.Delim(']')
		case "scheme":
			s := in.String()
			p.Scheme = &s
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func (p *Point) UnmarshalJSON(data []byte) error {
	in := jlexer.Lexer{Data: data}
	p.UnmarshalEasyJSON(&in)
	return in.Error()
}

func encodeAtom(w *jwriter.Writer, a Atom) {
	w.RawString(`{"handle":`)
	if a.Handle.IsNumeric() {
		w.RawString(string(a.Handle))
	} else {
		w.String(string(a.Handle))
	}
	w.RawString(`,"sti":`)
	w.Float64(a.STI)
	w.RawByte('}')
}

func decodeAtom(in *jlexer.Lexer, a *Atom) {
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		switch key {
		case "handle":
			if err := a.Handle.UnmarshalJSON(in.Raw()); err != nil {
				in.AddError(err)
			}
		case "sti":
			a.STI = in.Float64()
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
}
