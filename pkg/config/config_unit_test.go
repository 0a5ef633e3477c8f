//go:build unit

package config_test

import (
	"os"
	"path/filepath"

	"github.com/animalet/gregal-go/pkg/config"
	"github.com/animalet/gregal-go/pkg/environment"
	"github.com/animalet/gregal-go/pkg/secrets"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

type ServiceSection struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

func (s ServiceSection) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

type MockSecretResolver struct {
	Secrets map[string]string
}

func (m *MockSecretResolver) Resolve(key string) (string, error) {
	if val, ok := m.Secrets[key]; ok {
		return val, nil
	}
	return "", errors.New("secret not found")
}

func (m *MockSecretResolver) Name() string {
	return "mock"
}

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config_test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	write := func(name, content string) string {
		path := filepath.Join(tempDir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	Context("NewConfig", func() {
		It("should read YAML sections", func() {
			path := write("test.yaml", `
service:
  host: localhost
  port: 8080
`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Has("service")).To(BeTrue())
			Expect(cfg.Has("missing")).To(BeFalse())

			section, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(section).NotTo(BeNil())
			Expect(section.Host).To(Equal("localhost"))
			Expect(section.Port).To(Equal(8080))
		})

		It("should read TOML sections", func() {
			path := write("test.toml", `
[service]
host = "localhost"
port = 8080
`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())

			section, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(section).NotTo(BeNil())
			Expect(section.Port).To(Equal(8080))
		})

		It("should reject unknown extensions", func() {
			path := write("test.json", `{}`)
			_, err := config.NewConfig(path)
			Expect(err).To(HaveOccurred())
		})

		It("should fail for missing files", func() {
			_, err := config.NewConfig(filepath.Join(tempDir, "nope.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("Get", func() {
		It("should return nil for missing sections", func() {
			path := write("test.yaml", `other: {}`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())

			section, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(section).To(BeNil())
		})

		It("should surface validation errors", func() {
			path := write("test.yaml", `
service:
  host: localhost
`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())

			_, err = config.Get[ServiceSection](cfg, "service")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("port is required"))
		})

		It("should expand secret references", func() {
			secrets.Register("mock", &MockSecretResolver{Secrets: map[string]string{"db_pass": "s3cret"}})
			defer secrets.Unregister("mock")

			path := write("test.yaml", `
service:
  host: localhost
  port: 8080
  secret: ${mock:db_pass}
`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())

			section, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(section.Secret).To(Equal("s3cret"))
		})

		It("should hand out independent copies on repeated lookups", func() {
			path := write("test.yaml", `
service:
  host: localhost
  port: 8080
`)
			cfg, err := config.NewConfig(path)
			Expect(err).NotTo(HaveOccurred())

			first, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			first.Host = "mutated"

			second, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Host).To(Equal("localhost"))
		})
	})

	Context("NewConfigForEnvironment", func() {
		It("should prefer the environment-specific file", func() {
			write("config.yaml", `service: {host: fallback, port: 1}`)
			write("config.production.yaml", `service: {host: prod, port: 2}`)

			env := environment.New(environment.ProductionName, nil)
			cfg, err := config.NewConfigForEnvironment(tempDir, env)
			Expect(err).NotTo(HaveOccurred())

			section, err := config.Get[ServiceSection](cfg, "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(section.Host).To(Equal("prod"))
		})

		It("should fall back to the generic file", func() {
			write("config.yaml", `service: {host: fallback, port: 1}`)

			env := environment.New("staging", nil)
			cfg, err := config.NewConfigForEnvironment(tempDir, env)
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Base(cfg.File())).To(Equal("config.yaml"))
		})

		It("should fail when no candidate exists", func() {
			env := environment.New("staging", nil)
			_, err := config.NewConfigForEnvironment(tempDir, env)
			Expect(err).To(HaveOccurred())
		})
	})
})
