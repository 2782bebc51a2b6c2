package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/consensys/bavard"

	tmpl "github.com/consensys/bn254/internal/generator/template"
	"github.com/consensys/bn254/logger"
)

var log = logger.Logger()

// fieldConfig parameterizes the element templates. Q holds the modulus limbs
// in little endian order, as hex literals.
type fieldConfig struct {
	PackageName string
	Q           [4]string
	QInvNeg     string
}

//go:generate go run .
func main() {

	fields := []fieldConfig{
		{
			PackageName: "fp",
			Q: [4]string{
				"0x3c208c16d87cfd47",
				"0x97816a916871ca8d",
				"0xb85045b68181585d",
				"0x30644e72e131a029",
			},
			QInvNeg: "0x87d20782e4866389",
		},
		{
			PackageName: "fr",
			Q: [4]string{
				"0x43e1f593f0000001",
				"0x2833e84879b97091",
				"0xb85045b68181585d",
				"0x30644e72e131a029",
			},
			QInvNeg: "0xc2e1f593efffffff",
		},
	}

	for _, f := range fields {
		log.Info().Str("package", f.PackageName).Msg("generating field")
		dir := filepath.Join("..", "..", f.PackageName)

		if err := bavard.GenerateFromString(filepath.Join(dir, "arith.go"), []string{tmpl.Arith}, f,
			bavard.Package(f.PackageName),
			bavard.GeneratedBy("bn254/internal/generator"),
			bavard.Format(false),
			bavard.Import(false),
		); err != nil {
			log.Fatal().Err(err).Msg("generating arith.go")
		}

		// files with build tags keep the tag above the package clause, so
		// they bypass bavard's header handling
		for _, e := range []struct {
			file string
			src  string
		}{
			{"element_ops_amd64.go", tmpl.OpsAmd64},
			{"element_ops_purego.go", tmpl.OpsPurego},
			{"element_mul_amd64.s", tmpl.MulAmd64},
		} {
			if err := render(filepath.Join(dir, e.file), e.src, f); err != nil {
				log.Fatal().Err(err).Str("file", e.file).Msg("generating")
			}
		}
	}

	cmd := exec.Command("gofmt", "-s", "-w", "../../fp", "../../fr")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Fatal().Err(err).Msg("gofmt")
	}
}

func render(oFile, src string, data interface{}) error {
	t, err := template.New(filepath.Base(oFile)).Parse(src)
	if err != nil {
		return err
	}
	f, err := os.Create(oFile)
	if err != nil {
		return err
	}
	if err := t.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
