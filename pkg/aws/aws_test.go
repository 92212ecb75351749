package aws_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awspkg "github.com/Soukthavilay/qr-order/pkg/aws"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapSNSEnvelope(t *testing.T) {
	inner := `{"order_id":"o1","status":"ready"}`
	envelope := `{"Type":"Notification","Message":"{\"order_id\":\"o1\",\"status\":\"ready\"}"}`

	assert.Equal(t, inner, awspkg.UnwrapSNSEnvelope(envelope))
	assert.Equal(t, inner, awspkg.UnwrapSNSEnvelope(inner))
	assert.Equal(t, "not json", awspkg.UnwrapSNSEnvelope("not json"))
}

func TestMetricsClient_DisabledIsNoop(t *testing.T) {
	var nilClient *awspkg.MetricsClient
	assert.False(t, nilClient.IsEnabled())
	assert.NoError(t, nilClient.RecordCount(context.Background(), awspkg.MetricOrdersCreated, nil))
}

type fakeSecretsAPI struct {
	secrets map[string]string
	calls   int
}

func (f *fakeSecretsAPI) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.secrets[sdkaws.ToString(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: sdkaws.String(v)}, nil
}

func TestSecretsClient_CachesValues(t *testing.T) {
	api := &fakeSecretsAPI{secrets: map[string]string{"jwt": "abc"}}
	client := awspkg.NewSecretsClientWithAPI(api)

	for i := 0; i < 3; i++ {
		v, err := client.GetSecret(context.Background(), "jwt")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	}
	assert.Equal(t, 1, api.calls)

	_, err := client.GetSecret(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSecretsClient_GetSecretMap(t *testing.T) {
	client := awspkg.NewSecretsClientWithAPI(&fakeSecretsAPI{secrets: map[string]string{
		"db":  `{"POSTGRES_USER":"app","POSTGRES_PASSWORD":"pw"}`,
		"bad": `not-json`,
	}})

	m, err := client.GetSecretMap(context.Background(), "db")
	require.NoError(t, err)
	assert.Equal(t, "app", m["POSTGRES_USER"])

	_, err = client.GetSecretMap(context.Background(), "bad")
	assert.Error(t, err)
}

type fakeUploadAPI struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeUploadAPI) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &manager.UploadOutput{}, nil
}

func TestImageUploader_Upload(t *testing.T) {
	api := &fakeUploadAPI{}
	uploader := awspkg.NewImageUploaderWithAPI(api, "menu-images")

	require.NoError(t, uploader.Upload(context.Background(), "menu/pad-thai/1.png", "image/png", strings.NewReader("png-bytes")))
	require.Len(t, api.inputs, 1)
	assert.Equal(t, "menu-images", sdkaws.ToString(api.inputs[0].Bucket))
	assert.Equal(t, "menu/pad-thai/1.png", sdkaws.ToString(api.inputs[0].Key))
	assert.Equal(t, "image/png", sdkaws.ToString(api.inputs[0].ContentType))
	assert.Equal(t, "png-bytes", api.bodies[0])

	api.err = errors.New("AccessDenied")
	err := uploader.Upload(context.Background(), "menu/x.png", "image/png", strings.NewReader(""))
	assert.ErrorContains(t, err, "AccessDenied")
}
