package providers

import (
	"github.com/samber/do/v2"

	"github.com/staffpicks/staffpicks-server/internal/config"
	"github.com/staffpicks/staffpicks-server/internal/logger"
	"github.com/staffpicks/staffpicks-server/internal/media/images"
	"github.com/staffpicks/staffpicks-server/internal/metadata/isbndb"
)

// ProvideISBNClient provides the ISBNdb lookup client. The client is
// constructed even without an API key; lookups then answer as disabled.
func ProvideISBNClient(i do.Injector) (*isbndb.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := isbndb.NewClient(cfg.ISBNdb.APIKey, cfg.ISBNdb.BaseURL, log.Logger)
	if client.Enabled() {
		log.Info("ISBNdb lookup enabled")
	} else {
		log.Info("ISBNdb lookup disabled (no API key)")
	}

	return client, nil
}

// ProvideUploader provides the Cloudinary image uploader.
func ProvideUploader(i do.Injector) (*images.Uploader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	uploader := images.NewUploader(images.CloudinaryConfig{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.UploadFolder,
	}, log.Logger)

	if uploader.Enabled() {
		log.Info("Image uploads enabled", "cloud", cfg.Cloudinary.CloudName)
	} else {
		log.Info("Image uploads disabled (no Cloudinary credentials)")
	}

	return uploader, nil
}
