// Copyright 2013 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"stax/config"
	"stax/vm"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "stax-config")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should default to wrapping, unlimited and quiet", func() {
		c := config.Default()
		Expect(c.Validate()).To(Succeed())
		Expect(c.VMOptions(nil)).To(Equal(vm.Options{Overflow: vm.WrapOnOverflow}))
		Expect(c.LogLevel()).To(Equal(zerolog.WarnLevel))
	})

	It("should load TOML", func() {
		path := write("stax.toml", `
[stack]
max-depth = 64

[arith]
overflow = "trap"

[log]
level = "debug"
`)
		c, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Stack.MaxDepth).To(Equal(64))
		Expect(c.Arith.Overflow).To(Equal("trap"))
		Expect(c.LogLevel()).To(Equal(zerolog.DebugLevel))

		log := zerolog.Nop()
		opts := c.VMOptions(&log)
		Expect(opts.MaxDepth).To(Equal(64))
		Expect(opts.Overflow).To(Equal(vm.TrapOnOverflow))
		Expect(opts.Log).To(BeIdenticalTo(&log))
	})

	It("should load YAML", func() {
		path := write("stax.yml", `
stack:
  max-depth: 8
arith:
  overflow: wrap
`)
		c, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Stack.MaxDepth).To(Equal(8))
		Expect(c.Arith.Overflow).To(Equal("wrap"))
		Expect(c.Log.Level).To(Equal("warn"))
	})

	It("should keep defaults for missing keys", func() {
		c, err := config.Load(write("empty.toml", ""))
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(config.Default()))
	})

	It("should treat an empty overflow policy as wrap", func() {
		c := &config.Config{}
		Expect(c.Validate()).To(Succeed())
		Expect(c.VMOptions(nil).Overflow).To(Equal(vm.WrapOnOverflow))
	})

	DescribeTable("rejects bad files",
		func(name, content, msg string) {
			_, err := config.Load(write(name, content))
			Expect(err).To(MatchError(ContainSubstring(msg)))
		},
		Entry("unknown extension", "stax.ini", "", `unknown config format ".ini"`),
		Entry("bad TOML", "bad.toml", "[stack\n", "parse error"),
		Entry("bad YAML", "bad.yaml", "stack: [\n", "parse error"),
		Entry("negative depth", "neg.toml", "[stack]\nmax-depth = -1\n", "max-depth must not be negative"),
		Entry("unknown policy", "p.yaml", "arith:\n  overflow: saturate\n", `unknown overflow policy "saturate"`),
		Entry("unknown level", "l.toml", "[log]\nlevel = \"loud\"\n", "log.level"),
	)

	It("should report missing files", func() {
		_, err := config.Load(filepath.Join(dir, "nope.toml"))
		Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	})
})
