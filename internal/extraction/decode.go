package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	api.DisableConfigDir()
}

type decodeFunc func(data []byte) (string, error)

func (k Kind) decoder() decodeFunc {
	switch k {
	case KindPDF:
		return decodePDF
	case KindJSON:
		return decodeJSON
	default:
		return decodeText
	}
}

const byteOrderMark = "\uFEFF"

func decodeText(data []byte) (string, error) {
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	return strings.TrimPrefix(text, byteOrderMark), nil
}

// trimContent strips surrounding whitespace, including stray byte order marks.
func trimContent(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// decodeJSON unwraps a top-level JSON string and re-serializes any other JSON
// value compactly, with numbers and string escapes normalized and object key
// order preserved. Invalid JSON falls back to the raw text.
func decodeJSON(data []byte) (string, error) {
	text, _ := decodeText(data)

	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return text, nil
	}

	if s, ok := value.(string); ok {
		return s, nil
	}

	out, err := reencodeJSON(text)
	if err != nil {
		return text, nil
	}
	return out, nil
}

func reencodeJSON(text string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := writeJSONValue(dec, &buf); err != nil {
		return "", err
	}
	if _, err := dec.Token(); err != io.EOF {
		return "", fmt.Errorf("trailing data after json value")
	}
	return buf.String(), nil
}

func writeJSONValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		buf.WriteRune(rune(t))
		for i := 0; dec.More(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if t == '{' {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				if err := writeJSONScalar(buf, key); err != nil {
					return err
				}
				buf.WriteByte(':')
			}
			if err := writeJSONValue(dec, buf); err != nil {
				return err
			}
		}
		end, err := dec.Token()
		if err != nil {
			return err
		}
		buf.WriteRune(rune(end.(json.Delim)))
		return nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return err
		}
		return writeJSONScalar(buf, f)
	default:
		return writeJSONScalar(buf, t)
	}
}

func writeJSONScalar(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

func decodePDF(data []byte) (text string, err error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return "", fmt.Errorf("%w: invalid pdf: %v", ErrExtraction, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf parser: %v", ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read text: %v", ErrExtraction, err)
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: read text: %v", ErrExtraction, err)
	}

	return string(out), nil
}
