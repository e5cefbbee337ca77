package helper

import (
	"context"
	"mime/multipart"

	"cab_booking/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		logrus.Fatalf("cloudinary init failed: %v", err)
	}
	return cld
}

// UploadCouponImage pushes a multipart upload to the coupons folder and
// returns its public URL.
func UploadCouponImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	cld := InitCloudinary()
	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: "coupons"})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
