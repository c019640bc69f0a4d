package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

const bioUsage = "Usage: bio <customer-id> | bio add <customer-id> | bio primary <id> | bio rm <id>"

// Biometrics lists, registers, promotes or removes biometric samples.
func (a *App) Biometrics(ctx context.Context, args []string) error {
	if !a.guard.Allows(guard.CapBiometrics) {
		a.println(accessDeniedMessage)
		return nil
	}

	var err error
	switch {
	case len(args) == 1:
		var list []models.Biometric
		if list, err = a.biometrics.List(ctx, args[0]); err == nil {
			a.printBiometrics(list)
		}
	case len(args) == 2 && args[0] == "add":
		err = a.uploadBiometric(ctx, args[1])
	case len(args) == 2 && args[0] == "primary":
		var b *models.Biometric
		if b, err = a.biometrics.SetPrimary(ctx, args[1]); err == nil {
			a.printf("Biometric %s is now the primary %s sample.\n", b.ID, b.Type)
		}
	case len(args) == 2 && args[0] == "rm":
		ok, cerr := Confirm(a.reader, fmt.Sprintf("Delete biometric %s?", args[1]), a.out)
		if cerr != nil || !ok {
			a.println("Nothing deleted.")
			return cerr
		}
		if err = a.biometrics.Delete(ctx, args[1]); err == nil {
			a.println("Biometric deleted.")
		}
	default:
		a.println(bioUsage)
		return nil
	}

	if err != nil {
		a.report(ctx, err)
	}
	return err
}

func (a *App) printBiometrics(list []models.Biometric) {
	if len(list) == 0 {
		a.println("No biometric records.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BIOMETRIC\tTYPE\tPRIMARY\tQUALITY\tREGISTERED")
	for _, b := range list {
		quality := "-"
		if b.QualityScore != nil {
			quality = strconv.FormatFloat(*b.QualityScore, 'f', 1, 64)
		}
		primary := ""
		if b.IsPrimary {
			primary = "yes"
		}
		registered := "-"
		if !b.CreatedAt.IsZero() {
			registered = b.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Type, primary, quality, registered)
	}
	_ = tw.Flush()
}

func (a *App) uploadBiometric(ctx context.Context, customerID string) error {
	invalid := func(field, msg string) error {
		return &models.ValidationError{Fields: map[string]string{field: msg}}
	}

	kind, err := GetSimpleText(a.reader, "Type (face/fingerprint)", a.out)
	if err != nil {
		return err
	}

	path, err := GetSimpleText(a.reader, "Image file", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return invalid("file", "file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return invalid("file", "cannot read "+path)
	}
	if limit := a.config.MaxUploadBytes; limit > 0 && info.Size() > limit {
		return invalid("file", fmt.Sprintf("file exceeds %d MB", limit/1024/1024))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return invalid("file", "cannot read "+path)
	}

	upload := models.BiometricUpload{
		CustomerID: customerID,
		Type:       models.BiometricType(strings.ToLower(kind)),
		FileName:   filepath.Base(path),
		Content:    content,
	}

	score, err := GetSimpleText(a.reader, "Quality score 0-100 (optional)", a.out)
	if err != nil {
		return err
	}
	if score != "" {
		v, perr := strconv.ParseFloat(score, 64)
		if perr != nil {
			return invalid("quality_score", "quality score must be a number")
		}
		upload.QualityScore = &v
	}

	primary, err := Confirm(a.reader, "Make it the primary sample?", a.out)
	if err != nil {
		return err
	}
	upload.IsPrimary = &primary

	lines, err := GetMetadata(a.reader, a.out)
	if err != nil {
		return err
	}
	if len(lines) > 0 {
		meta, merr := models.MetadataFromLines(lines)
		if merr != nil {
			return invalid("metadata", merr.Error())
		}
		upload.Metadata = meta
	}

	b, err := a.biometrics.Upload(ctx, upload)
	if err != nil {
		return err
	}
	a.printf("Biometric %s registered.\n", b.ID)
	return nil
}
