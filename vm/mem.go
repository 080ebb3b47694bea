// This file is part of regvm.
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

package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/db47h/regvm/isa"
)

// LoadImage reads an assembled image from fileName in the wire format
// produced by isa.Encode.
func LoadImage(fileName string) (isa.Image, error) {
	b, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read image", fileName)
	}
	img, err := isa.Decode(string(b))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: decode image", fileName)
	}
	return img, nil
}

// SaveImage writes img to fileName in the wire format produced by
// isa.Encode, removing the partial file on write failure.
func SaveImage(fileName string, img isa.Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "%s: create image", fileName)
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil {
			err = errors.Wrap(ferr, "flush failed")
		}
		f.Close()
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = io.WriteString(w, isa.Encode(img)); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}
