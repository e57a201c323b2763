package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "clinic.v1.ConsoleService"

// Full method names, as seen by interceptors.
const (
	MethodLogin               = "/" + ServiceName + "/Login"
	MethodLogout              = "/" + ServiceName + "/Logout"
	MethodValidateToken       = "/" + ServiceName + "/ValidateToken"
	MethodListAppointments    = "/" + ServiceName + "/ListAppointments"
	MethodGetAppointment      = "/" + ServiceName + "/GetAppointment"
	MethodCreateAppointment   = "/" + ServiceName + "/CreateAppointment"
	MethodUpdateAppointment   = "/" + ServiceName + "/UpdateAppointment"
	MethodDeleteAppointment   = "/" + ServiceName + "/DeleteAppointment"
	MethodGenerateInvoice     = "/" + ServiceName + "/GenerateInvoice"
	MethodGetServiceCost      = "/" + ServiceName + "/GetServiceCost"
	MethodUpdateInvoiceStatus = "/" + ServiceName + "/UpdateInvoiceStatus"
	MethodClearCurrentInvoice = "/" + ServiceName + "/ClearCurrentInvoice"
	MethodClearError          = "/" + ServiceName + "/ClearError"
	MethodClearSelected       = "/" + ServiceName + "/ClearSelectedAppointment"
	MethodSetFilters          = "/" + ServiceName + "/SetFilters"
	MethodClearFilters        = "/" + ServiceName + "/ClearFilters"
	MethodGetState            = "/" + ServiceName + "/GetState"
	MethodGetDashboard        = "/" + ServiceName + "/GetDashboard"
	MethodWatchState          = "/" + ServiceName + "/WatchState"
)

type rpc func(h *Handler, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unary(name string, fn rpc) grpc.MethodDesc {
	full := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, icpt grpc.UnaryServerInterceptor) (any, error) {
			req := new(structpb.Struct)
			if err := dec(req); err != nil {
				return nil, err
			}
			h := srv.(*Handler)
			if icpt == nil {
				return fn(h, ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return icpt(ctx, req, info, func(ctx context.Context, req any) (any, error) {
				return fn(h, ctx, req.(*structpb.Struct))
			})
		},
	}
}

// ServiceDesc describes ConsoleService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", (*Handler).Login),
		unary("Logout", (*Handler).Logout),
		unary("ValidateToken", (*Handler).ValidateToken),
		unary("ListAppointments", (*Handler).ListAppointments),
		unary("GetAppointment", (*Handler).GetAppointment),
		unary("CreateAppointment", (*Handler).CreateAppointment),
		unary("UpdateAppointment", (*Handler).UpdateAppointment),
		unary("DeleteAppointment", (*Handler).DeleteAppointment),
		unary("GenerateInvoice", (*Handler).GenerateInvoice),
		unary("GetServiceCost", (*Handler).GetServiceCost),
		unary("UpdateInvoiceStatus", (*Handler).UpdateInvoiceStatus),
		unary("ClearCurrentInvoice", (*Handler).ClearCurrentInvoice),
		unary("ClearError", (*Handler).ClearError),
		unary("ClearSelectedAppointment", (*Handler).ClearSelectedAppointment),
		unary("SetFilters", (*Handler).SetFilters),
		unary("ClearFilters", (*Handler).ClearFilters),
		unary("GetState", (*Handler).GetState),
		unary("GetDashboard", (*Handler).GetDashboard),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchState",
			ServerStreams: true,
			Handler: func(srv any, stream grpc.ServerStream) error {
				req := new(structpb.Struct)
				if err := stream.RecvMsg(req); err != nil {
					return err
				}
				return srv.(*Handler).WatchState(req, stream)
			},
		},
	},
	Metadata: "clinic/v1/console.proto",
}

func Register(s grpc.ServiceRegistrar, h *Handler) {
	s.RegisterService(&ServiceDesc, h)
}
