package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// labelDetector is the slice of the Rekognition client we use.
type labelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type RekognitionService struct {
	client labelDetector
}

func NewRekognitionService(ctx context.Context, region string) (*RekognitionService, error) {
	if region == "" {
		return nil, errors.New("AWS_REGION not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DecodeDataURI extracts the image bytes from a "data:image/...;base64,"
// URI.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok || payload == "" {
		return nil, errors.New("invalid data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid image data: %w", err)
	}
	return data, nil
}

// RecognizeLabels returns the top labels for a base64 data URI image.
func (r *RekognitionService) RecognizeLabels(ctx context.Context, base64Img string) ([]string, error) {
	data, err := DecodeDataURI(base64Img)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, aws.ToString(l.Name))
		}
	}
	return labels, nil
}
