package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	yaml "gopkg.in/yaml.v2"
)

// passageFile is the on-disk YAML layout for a passage set.
type passageFile struct {
	Confession string `yaml:"confession"`
	Passages   []struct {
		Reference string `yaml:"reference"`
		Text      string `yaml:"text"`
	} `yaml:"passages"`
}

// LoadDirectory walks a directory of corpus source files and returns the
// passages found in them. Supported formats: .yaml/.yml passage sets, .html
// scripture pages, .md documents. Unsupported files are ignored.
func LoadDirectory(dir string) ([]Passage, error) {
	var all []Passage

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		var (
			passages []Passage
			loadErr  error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			passages, loadErr = loadYAMLFile(path)
		case ".html", ".htm":
			passages, loadErr = loadHTMLFile(path)
		case ".md":
			passages, loadErr = loadMarkdownFile(path)
		default:
			return nil
		}
		if loadErr != nil {
			return fmt.Errorf("loading %s: %w", path, loadErr)
		}
		all = append(all, passages...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func loadYAMLFile(path string) ([]Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf passageFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("unmarshal passage file: %w", err)
	}
	if pf.Confession == "" {
		return nil, fmt.Errorf("passage file has no confession field")
	}

	out := make([]Passage, 0, len(pf.Passages))
	for _, p := range pf.Passages {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		out = append(out, Passage{
			Confession: pf.Confession,
			Reference:  p.Reference,
			Text:       p.Text,
		})
	}
	return out, nil
}

// loadHTMLFile extracts verse blocks from a scripture HTML page. The exporter
// pages mark each verse with class="verse" and carry the reference in a
// data-ref attribute; pages without that markup fall back to one passage per
// paragraph. Confession comes from the file name prefix, e.g.
// "sunni_quran_002.html".
func loadHTMLFile(path string) ([]Passage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	confession := confessionFromFilename(path)
	var out []Passage

	doc.Find(".verse").Each(func(i int, s *goquery.Selection) {
		txt := strings.TrimSpace(s.Text())
		if txt == "" {
			return
		}
		ref, _ := s.Attr("data-ref")
		if ref == "" {
			ref = fmt.Sprintf("%s #%d", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), i+1)
		}
		out = append(out, Passage{Confession: confession, Reference: ref, Text: txt})
	})

	if len(out) == 0 {
		doc.Find("p").Each(func(i int, s *goquery.Selection) {
			txt := strings.TrimSpace(s.Text())
			if txt == "" {
				return
			}
			out = append(out, Passage{
				Confession: confession,
				Reference:  fmt.Sprintf("%s #%d", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), i+1),
				Text:       txt,
			})
		})
	}

	return out, nil
}

// loadMarkdownFile walks the Goldmark AST and emits one passage per heading
// section: the heading text becomes the reference, the section body the text.
func loadMarkdownFile(path string) ([]Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	confession := confessionFromFilename(path)
	parser := goldmark.DefaultParser()
	reader := text.NewReader(data)
	doc := parser.Parse(reader)

	var out []Passage
	var ref string
	var body bytes.Buffer

	flush := func() {
		txt := strings.TrimSpace(body.String())
		if ref != "" && txt != "" {
			out = append(out, Passage{Confession: confession, Reference: ref, Text: txt})
		}
		body.Reset()
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			flush()
			ref = string(nodeText(n, data))
		default:
			if ref != "" {
				body.WriteString(string(nodeText(node, data)))
				body.WriteString("\n")
			}
		}
	}
	flush()

	return out, nil
}

func nodeText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}

// confessionFromFilename reads the confession tag from the leading filename
// segment: "orthodox_psalms.md" -> "orthodox".
func confessionFromFilename(path string) string {
	base := filepath.Base(path)
	if idx := strings.IndexAny(base, "_-"); idx > 0 {
		return strings.ToLower(base[:idx])
	}
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
