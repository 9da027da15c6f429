/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package grpc_recogniser

import (
	"context"

	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// RecogniserServer is implemented by model sidecars written in go.
type RecogniserServer interface {
	Recognise(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterRecogniserServer(s grpc.ServiceRegistrar, srv RecogniserServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RecogniserServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Recognise",
			Handler:    recogniseHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "legalner/recogniser.proto",
}

func recogniseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecogniserServer).Recognise(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: recogniseMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecogniserServer).Recognise(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// NewServer serves client over the Struct protocol, so any recogniser can run as a sidecar.
func NewServer(client recogniser.Client) RecogniserServer {
	return &server{client: client}
}

type server struct {
	client recogniser.Client
}

func (s *server) Recognise(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text := req.GetFields()["text"].GetStringValue()
	entities, err := s.client.Recognise(ctx, text)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	spans := recogniser.ToCharOffsets(text, entities)
	values := make([]interface{}, len(spans))
	for i, span := range spans {
		values[i] = map[string]interface{}{
			"text":       entities[i].Text,
			"label":      span.Label,
			"start_char": span.Start,
			"end_char":   span.End,
		}
	}
	return structpb.NewStruct(map[string]interface{}{"entities": values})
}
