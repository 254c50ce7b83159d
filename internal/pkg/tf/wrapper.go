package tf

import (
	"context"
	"strings"

	tf_framework "github.com/airenas/go-tf-serving-protogen/tensorflow/core/framework"
	tf_serving "github.com/airenas/go-tf-serving-protogen/tensorflow_serving/apis"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// Wrapper structure used to call a TF serving sentence embedding model
type Wrapper struct {
	url     string
	name    string
	version int
}

// NewWrapper creates Wrapper
func NewWrapper(url string, name string, version int) (*Wrapper, error) {
	res := Wrapper{}
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("No tf url provided")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("No tf model name provided")
	}
	res.url = url
	res.name = name
	res.version = version
	return &res, nil
}

// Healthy returns nil or error if TF model is not accessible
func (w *Wrapper) Healthy() error {
	conn, err := grpc.Dial(w.url, grpc.WithInsecure())
	if err != nil {
		return err
	}
	defer conn.Close()

	r := newModelStatusRequest(w.name)
	client := tf_serving.NewModelServiceClient(conn)
	st, err := client.GetModelStatus(context.Background(), r)
	if err != nil {
		return err
	}
	for _, s := range st.ModelVersionStatus {
		if s.State == tf_serving.ModelVersionStatus_AVAILABLE {
			return nil
		}
	}
	return errors.New("Model is not available")
}

// Embed encodes texts and returns one embedding vector per input text
func (w *Wrapper) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	conn, err := grpc.Dial(w.url, grpc.WithInsecure())
	if err != nil {
		return nil, errors.Wrap(err, "Cannot connect to the grpc server")
	}
	defer conn.Close()

	r := newPredictRequest(w.name)
	addInput(r, "inputs", texts)

	client := tf_serving.NewPredictionServiceClient(conn)
	resp, err := client.Predict(ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot invoke tf server")
	}

	out := resp.GetOutputs()
	for _, v := range out {
		d := v.GetTensorShape().GetDim()
		if len(d) < 2 {
			return nil, errors.Errorf("Expected result dimension 2, got %v", d)
		}
		return makeRes(v.GetFloatVal(), int(d[0].Size), int(d[1].Size)), nil
	}

	return nil, errors.New("No result")
}

func makeRes(in []float32, d1, d2 int) [][]float32 {
	result := make([][]float32, d1)
	for i := 0; i < d1; i++ {
		result[i] = in[i*d2 : (i+1)*d2]
	}
	return result
}

func newPredictRequest(modelName string) *tf_serving.PredictRequest {
	return &tf_serving.PredictRequest{
		ModelSpec: &tf_serving.ModelSpec{
			Name: modelName,
		},
		Inputs: make(map[string]*tf_framework.TensorProto),
	}
}

func newModelStatusRequest(modelName string) *tf_serving.GetModelStatusRequest {
	return &tf_serving.GetModelStatusRequest{
		ModelSpec: &tf_serving.ModelSpec{
			Name: modelName,
		}}
}

func addInput(pr *tf_serving.PredictRequest, tensorName string, data []string) {
	bData := make([][]byte, len(data))
	for i, s := range data {
		bData[i] = []byte(s)
	}
	tp := &tf_framework.TensorProto{
		Dtype: tf_framework.DataType_DT_STRING,
		TensorShape: &tf_framework.TensorShapeProto{
			Dim: []*tf_framework.TensorShapeProto_Dim{
				{Size: int64(len(data))},
			},
		},
		StringVal: bData,
	}
	pr.Inputs[tensorName] = tp
}
