package steam

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// KeyValues is a parsed Valve KeyValues block. Values are either string or
// KeyValues. Keys are stored as written; use Lookup for case-insensitive access.
type KeyValues map[string]any

// Lookup returns the value stored under key, matching case-insensitively.
func (kv KeyValues) Lookup(key string) (any, bool) {
	if v, ok := kv[key]; ok {
		return v, true
	}
	for k, v := range kv {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// String returns the string value under key, or "".
func (kv KeyValues) String(key string) string {
	v, _ := kv.Lookup(key)
	s, _ := v.(string)
	return s
}

// Block returns the nested block under key, or nil.
func (kv KeyValues) Block(key string) KeyValues {
	v, _ := kv.Lookup(key)
	b, _ := v.(KeyValues)
	return b
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokOpen
	tokClose
)

type vdfLexer struct {
	r    *bufio.Reader
	line int
}

func (l *vdfLexer) errorf(format string, args ...any) error {
	return fmt.Errorf("vdf line %d: %s", l.line, fmt.Sprintf(format, args...))
}

// next returns the next token, skipping whitespace, "//" comments and
// conditional markers like [$WIN32].
func (l *vdfLexer) next() (tokenKind, string, error) {
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return tokEOF, "", nil
			}
			return tokEOF, "", err
		}
		switch {
		case c == '\n':
			l.line++
		case c == ' ' || c == '\t' || c == '\r':
		case c == '{':
			return tokOpen, "", nil
		case c == '}':
			return tokClose, "", nil
		case c == '"':
			s, err := l.quoted()
			return tokString, s, err
		case c == '/':
			if peek, _ := l.r.Peek(1); len(peek) == 1 && peek[0] == '/' {
				if _, err := l.r.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
					return tokEOF, "", err
				}
				l.line++
				continue
			}
			return tokString, "/" + l.bare(), nil
		case c == '[':
			if _, err := l.r.ReadString(']'); err != nil {
				return tokEOF, "", l.errorf("unclosed conditional")
			}
		default:
			_ = l.r.UnreadRune()
			return tokString, l.bare(), nil
		}
	}
}

func (l *vdfLexer) quoted() (string, error) {
	var b strings.Builder
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return "", l.errorf("unclosed quote")
		}
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			esc, _, err := l.r.ReadRune()
			if err != nil {
				return "", l.errorf("unclosed quote")
			}
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(esc)
			}
		case '\n':
			l.line++
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
}

func (l *vdfLexer) bare() string {
	var b strings.Builder
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return b.String()
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '"' || c == '{' || c == '}' {
			_ = l.r.UnreadRune()
			return b.String()
		}
		b.WriteRune(c)
	}
}

// ParseVDF reads Valve KeyValues text (libraryfolders.vdf, appmanifest_*.acf)
// and returns the top-level block.
func ParseVDF(r io.Reader) (KeyValues, error) {
	l := &vdfLexer{r: bufio.NewReader(r), line: 1}
	return parseBlock(l, true)
}

func parseBlock(l *vdfLexer, top bool) (KeyValues, error) {
	out := make(KeyValues)
	for {
		kind, key, err := l.next()
		if err != nil {
			return nil, err
		}
		switch kind {
		case tokEOF:
			if top {
				return out, nil
			}
			return nil, l.errorf("unexpected end of input, missing '}'")
		case tokClose:
			if top {
				return nil, l.errorf("unexpected '}'")
			}
			return out, nil
		case tokOpen:
			return nil, l.errorf("unexpected '{' without key")
		}

		kind, val, err := l.next()
		if err != nil {
			return nil, err
		}
		switch kind {
		case tokString:
			out[key] = val
		case tokOpen:
			inner, err := parseBlock(l, false)
			if err != nil {
				return nil, err
			}
			out[key] = inner
		default:
			return nil, l.errorf("missing value for key %q", key)
		}
	}
}

// libraryPaths extracts library paths from a parsed libraryfolders.vdf,
// laid out as libraryfolders -> "0","1",... -> path. Older files store the
// path directly as the numbered value.
func libraryPaths(root KeyValues) []string {
	lf := root.Block("libraryfolders")
	if lf == nil {
		return nil
	}
	var paths []string
	for i := 0; ; i++ {
		v, ok := lf.Lookup(strconv.Itoa(i))
		if !ok {
			break
		}
		switch entry := v.(type) {
		case KeyValues:
			if p := entry.String("path"); p != "" {
				paths = append(paths, p)
			}
		case string:
			if entry != "" {
				paths = append(paths, entry)
			}
		}
	}
	return paths
}

// AppManifest holds the fields of an appmanifest_*.acf file modlink uses.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content.
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	root, err := ParseVDF(r)
	if err != nil {
		return AppManifest{}, err
	}
	state := root.Block("AppState")
	if state == nil {
		return AppManifest{}, errors.New("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.String("appid"),
		Name:       state.String("name"),
		InstallDir: state.String("installdir"),
	}, nil
}
