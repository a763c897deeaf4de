package visiongrpc

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpcstatus "google.golang.org/grpc/status"

	"vision_backend/internal/feature/imageanalysis/domain/entity"
)

// fakeImageAnnotatorServer はテスト用のImageAnnotatorサーバーです。
type fakeImageAnnotatorServer struct {
	visionpb.UnimplementedImageAnnotatorServer

	mu   sync.Mutex
	reqs []*visionpb.BatchAnnotateImagesRequest
	resp *visionpb.BatchAnnotateImagesResponse
	err  error
}

func (s *fakeImageAnnotatorServer) BatchAnnotateImages(_ context.Context, req *visionpb.BatchAnnotateImagesRequest) (*visionpb.BatchAnnotateImagesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

// startFakeServer はfakeサーバーを起動し、それに接続したGRPCAnnotatorを返します。
func startFakeServer(t *testing.T, fake *fakeImageAnnotatorServer) *GRPCAnnotator {
	t.Helper()

	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	visionpb.RegisterImageAnnotatorServer(srv, fake)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	a, err := NewGRPCAnnotator(context.Background(), Config{}, nil, option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestGRPCAnnotator_Annotate_Success(t *testing.T) {
	t.Parallel()

	fake := &fakeImageAnnotatorServer{
		resp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{{
				LogoAnnotations: []*visionpb.EntityAnnotation{{Description: "Acme", Score: 0.5}},
				SafeSearchAnnotation: &visionpb.SafeSearchAnnotation{
					Adult: visionpb.Likelihood_VERY_UNLIKELY,
					Racy:  visionpb.Likelihood_POSSIBLE,
				},
			}},
		},
	}
	a := startFakeServer(t, fake)

	req := &entity.BatchAnnotateRequest{
		Requests: []entity.AnnotateImageRequest{{
			Features: []entity.Feature{{Type: entity.LogoDetection, MaxResults: 4}},
			Image:    entity.Image{Content: "aW1n"}, // "img"
		}},
	}

	resp, err := a.Annotate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, fake.reqs, 1)
	sent := fake.reqs[0].GetRequests()
	require.Len(t, sent, 1)
	assert.Equal(t, []byte("img"), sent[0].GetImage().GetContent())
	require.Len(t, sent[0].GetFeatures(), 1)
	assert.Equal(t, visionpb.Feature_LOGO_DETECTION, sent[0].GetFeatures()[0].GetType())
	assert.Equal(t, int32(4), sent[0].GetFeatures()[0].GetMaxResults())

	require.Len(t, resp.Responses, 1)
	raw, ok := resp.Responses[0].Field("logoAnnotations")
	require.True(t, ok)
	var logos []entity.EntityAnnotation
	require.NoError(t, json.Unmarshal(raw, &logos))
	require.Len(t, logos, 1)
	assert.Equal(t, "Acme", logos[0].Description)
	assert.InDelta(t, 0.5, logos[0].Score, 0.0001)

	raw, ok = resp.Responses[0].Field("safeSearchAnnotation")
	require.True(t, ok)
	var safe entity.SafeSearchAnnotation
	require.NoError(t, json.Unmarshal(raw, &safe))
	assert.Equal(t, entity.Likelihood("VERY_UNLIKELY"), safe.Adult)
	assert.Equal(t, entity.Likelihood("POSSIBLE"), safe.Racy)

	_, ok = resp.Responses[0].Field("labelAnnotations")
	assert.False(t, ok, "unpopulated fields must not appear")
}

func TestGRPCAnnotator_Annotate_PerImageError(t *testing.T) {
	t.Parallel()

	fake := &fakeImageAnnotatorServer{
		resp: &visionpb.BatchAnnotateImagesResponse{
			Responses: []*visionpb.AnnotateImageResponse{{
				Error: &status.Status{Code: 3, Message: "Bad image data."},
			}},
		},
	}
	a := startFakeServer(t, fake)

	resp, err := a.Annotate(context.Background(), &entity.BatchAnnotateRequest{
		Requests: []entity.AnnotateImageRequest{{
			Features: []entity.Feature{{Type: entity.TextDetection, MaxResults: 1}},
			Image:    entity.Image{Content: "aW1n"},
		}},
	})

	require.NoError(t, err)
	st := resp.Responses[0].Status()
	require.NotNil(t, st)
	assert.Equal(t, int32(3), st.Code)
	assert.Equal(t, "Bad image data.", st.Message)
}

func TestGRPCAnnotator_Annotate_RPCError(t *testing.T) {
	t.Parallel()

	fake := &fakeImageAnnotatorServer{err: grpcstatus.Error(codes.PermissionDenied, "no access")}
	a := startFakeServer(t, fake)

	_, err := a.Annotate(context.Background(), &entity.BatchAnnotateRequest{
		Requests: []entity.AnnotateImageRequest{{
			Features: []entity.Feature{{Type: entity.LabelDetection, MaxResults: 1}},
			Image:    entity.Image{Content: "aW1n"},
		}},
	})

	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, grpcstatus.Code(err))
}

func TestToProto_InvalidContent(t *testing.T) {
	t.Parallel()

	_, err := toProto(&entity.BatchAnnotateRequest{
		Requests: []entity.AnnotateImageRequest{{
			Features: []entity.Feature{{Type: entity.LabelDetection, MaxResults: 1}},
			Image:    entity.Image{Content: "not base64!!"},
		}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "convert vision request")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("VISION_GRPC_ENDPOINT", "localhost:9000")

	assert.Equal(t, "localhost:9000", LoadConfig().Endpoint)
}
