// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package vm_test

import (
	"bytes"
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"stax/lex"
	"stax/vm"
)

type fixture struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Output   string `yaml:"output"`
	Trap     string `yaml:"trap"`
	PC       int    `yaml:"pc"`
	Overflow string `yaml:"overflow"`
	MaxDepth int    `yaml:"max-depth"`
}

func loadFixtures(path string) []fixture {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		panic(err)
	}
	return fixtures
}

var _ = Describe("Programs", func() {
	for _, f := range loadFixtures("testdata/programs.yaml") {
		f := f
		It(f.Name, func() {
			opts := vm.Options{MaxDepth: f.MaxDepth}
			if f.Overflow != "" {
				var err error
				opts.Overflow, err = vm.ParseOverflow(f.Overflow)
				Expect(err).NotTo(HaveOccurred())
			}

			var out bytes.Buffer
			err := vm.New(lex.New(f.Name, f.Source), &out, opts).Run()
			Expect(out.String()).To(Equal(f.Output))
			if f.Trap == "" {
				Expect(err).NotTo(HaveOccurred())
				return
			}
			var trap *vm.Error
			Expect(errors.As(err, &trap)).To(BeTrue())
			Expect(trap.Errno.Error()).To(Equal(f.Trap))
			Expect(trap.PC).To(Equal(f.PC))
		})
	}
})
