//go:build protogen

package vendordir

import (
	"context"
	"time"

	"github.com/giftwala/giftwala/libs/grpcx"
	vendordirv1 "github.com/giftwala/giftwala/protos/gen/vendordir/v1"
)

type VendorProfile struct {
	VendorID string
	Name     string
	CityID   string
	Status   string
}

// Provider looks vendors up in catalog-service over gRPC. Nil provider means
// reservation requests skip the directory check.
type Provider interface {
	GetVendorProfile(ctx context.Context, vendorID string) (VendorProfile, error)
}

type grpcProvider struct {
	client vendordirv1.VendorDirectoryServiceClient
}

func NewProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: vendordirv1.NewVendorDirectoryServiceClient(conn)}, nil
}

func (p *grpcProvider) GetVendorProfile(ctx context.Context, vendorID string) (VendorProfile, error) {
	resp, err := p.client.GetVendor(ctx, &vendordirv1.VendorRequest{VendorId: vendorID})
	if err != nil {
		return VendorProfile{}, err
	}
	return VendorProfile{
		VendorID: resp.GetVendorId(),
		Name:     resp.GetName(),
		CityID:   resp.GetCityId(),
		Status:   resp.GetStatus(),
	}, nil
}
