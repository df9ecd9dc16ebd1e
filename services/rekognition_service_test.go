package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type fakeDetector struct {
	in  *rekognition.DetectLabelsInput
	out *rekognition.DetectLabelsOutput
	err error
}

func (f *fakeDetector) DetectLabels(_ context.Context, in *rekognition.DetectLabelsInput, _ ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error) {
	f.in = in
	return f.out, f.err
}

func TestDecodeDataURI(t *testing.T) {
	data, err := DecodeDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil || string(data) != "hello" {
		t.Fatalf("decode = %q, %v", data, err)
	}

	for _, uri := range []string{
		"",
		"aGVsbG8=",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,aGVsbG8=",
		"data:image/png;base64,",
		"data:image/png;base64,@@@",
	} {
		if _, err := DecodeDataURI(uri); err == nil {
			t.Errorf("DecodeDataURI(%q) should fail", uri)
		}
	}
}

func TestRecognizeLabels(t *testing.T) {
	det := &fakeDetector{out: &rekognition.DetectLabelsOutput{Labels: []types.Label{
		{Name: aws.String("Banana")},
		{Name: nil},
		{Name: aws.String("Fruit")},
	}}}
	r := &RekognitionService{client: det}

	labels, err := r.RecognizeLabels(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(labels, []string{"Banana", "Fruit"}) {
		t.Fatalf("labels = %v", labels)
	}
	if aws.ToInt32(det.in.MaxLabels) != 5 || aws.ToFloat32(det.in.MinConfidence) != 75 || string(det.in.Image.Bytes) != "hello" {
		t.Fatalf("input = %+v", det.in)
	}

	det.err = errors.New("throttled")
	if _, err := r.RecognizeLabels(context.Background(), "data:image/jpeg;base64,aGVsbG8="); err == nil {
		t.Fatal("detector error should surface")
	}
}
