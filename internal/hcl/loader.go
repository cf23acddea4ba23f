package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/take/internal/config"
	"github.com/vk/take/internal/ctxlog"
	"github.com/vk/take/internal/takeerr"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL Takefile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file at path and translates it into a Takefile.
func (l *Loader) Load(ctx context.Context, path string) (*config.Takefile, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("HCL loader started.")

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, takeerr.Wrap(takeerr.KindInvalidConfig, diags, "Unable to parse %s: %s", path, diags.Error())
	}
	return l.decode(ctx, path, file.Body)
}

// LoadBytes parses src as if it had been read from filename.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Takefile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, takeerr.Wrap(takeerr.KindInvalidConfig, diags, "Unable to parse %s: %s", filename, diags.Error())
	}
	return l.decode(ctx, filename, file.Body)
}

func (l *Loader) decode(ctx context.Context, path string, body hcl.Body) (*config.Takefile, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)

	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, takeerr.Wrap(takeerr.KindInvalidConfig, diags, "Unable to decode %s: %s", path, diags.Error())
	}

	tf := &config.Takefile{
		Path:    path,
		Options: translateOptions(root.Options),
	}

	if root.Default != nil {
		def, err := translateTarget(ctx, "", root.Default.Body)
		if err != nil {
			return nil, err
		}
		tf.Targets = append(tf.Targets, def)
	}
	for _, block := range root.Targets {
		tc, err := translateTarget(ctx, block.Name, block.Body)
		if err != nil {
			return nil, err
		}
		tf.Targets = append(tf.Targets, tc)
	}

	logger.Debug("HCL loading complete.", "targets", len(tf.Targets), "has_default", root.Default != nil)
	return tf, nil
}
