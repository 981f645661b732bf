//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package redact renders config structs for logging while masking any
// field tagged with `redact:"true"`. Secrets stay out of the logs; the
// shape of the config stays visible.
package redact

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
)

const (
	nestIndent = "    "
	masked     = "<redacted>"
)

// ToBytes renders v, which must be a struct or a pointer to one.
func ToBytes(v any) []byte {
	var output bytes.Buffer
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if err := toWriter(&output, val, ""); err != nil {
		return []byte(fmt.Sprintf("failed to render struct: %v", err))
	}
	return output.Bytes()
}

func toWriter(w io.Writer, s reflect.Value, indent string) error {
	typeOfS := s.Type()
	for i := range s.NumField() {
		f := s.Field(i)
		name := typeOfS.Field(i).Name
		redacted := strings.EqualFold(typeOfS.Field(i).Tag.Get("redact"), "true")

		switch f.Kind() {
		case reflect.Struct:
			if _, err := fmt.Fprintf(w, "%v%v\n", indent, name); err != nil {
				return err
			}
			if redacted {
				_, err := fmt.Fprintf(w, "%v%v\n", indent+nestIndent, masked)
				if err != nil {
					return err
				}
				continue
			}
			if err := toWriter(w, f, indent+nestIndent); err != nil {
				return err
			}
		case reflect.Slice:
			if err := writeSlice(w, name, f, redacted, indent); err != nil {
				return err
			}
		case reflect.String, reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
			reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			printVal := masked
			if !redacted {
				printVal = fmt.Sprint(f.Interface())
			}
			if _, err := fmt.Fprintf(w, "%v%v = %v\n", indent, name, printVal); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported field kind: %v", f.Kind().String())
		}
	}
	return nil
}

func writeSlice(w io.Writer, name string, f reflect.Value, redacted bool, indent string) error {
	// A slice of structs gets one nested block per element; anything
	// else prints on one line.
	if f.Type().Elem().Kind() == reflect.Struct {
		for j := range f.Len() {
			if _, err := fmt.Fprintf(w, "%v%v[%d]\n", indent, name, j); err != nil {
				return err
			}
			if redacted {
				if _, err := fmt.Fprintf(w, "%v%v\n", indent+nestIndent, masked); err != nil {
					return err
				}
				continue
			}
			if err := toWriter(w, f.Index(j), indent+nestIndent); err != nil {
				return err
			}
		}
		return nil
	}
	printVal := masked
	if !redacted {
		printVal = fmt.Sprint(f.Interface())
	}
	_, err := fmt.Fprintf(w, "%v%v = %v\n", indent, name, printVal)
	return err
}
