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

// Package grpc_recogniser talks to a model sidecar over grpc. Messages are
// google.protobuf.Struct values so the sidecar needs no generated stubs:
//
//	request:  {"text": "..."}
//	response: {"entities": [{"label": "JUDGE", "start_char": 37, "end_char": 48}, ...]}
//
// Offsets count characters, as in the http recogniser.
package grpc_recogniser

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName     = "legalner.Recogniser"
	recogniseMethod = "/" + serviceName + "/Recognise"
)

// Dial opens a plaintext connection to the sidecar. The connection is lazy: nothing is
// dialled until the first call.
func Dial(host string, port int) (*grpc.ClientConn, error) {
	return grpc.NewClient(fmt.Sprintf("%s:%d", host, port), grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func NewClient(conn grpc.ClientConnInterface) recogniser.Client {
	return &client{conn: conn}
}

type client struct {
	conn grpc.ClientConnInterface
}

func (c *client) Recognise(ctx context.Context, text string) ([]lib.Entity, error) {
	if text == "" {
		return []lib.Entity{}, nil
	}

	req, err := structpb.NewStruct(map[string]interface{}{"text": text})
	if err != nil {
		return nil, err
	}
	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, recogniseMethod, req, resp); err != nil {
		return nil, fmt.Errorf("grpc recogniser: %w", err)
	}

	spans, err := charSpans(resp)
	if err != nil {
		return nil, fmt.Errorf("grpc recogniser: %w", err)
	}
	entities := recogniser.FromCharOffsets(recogniser.Grpc, text, spans)
	log.Debug().Str("recogniser", recogniser.Grpc).Int("entities", len(entities)).Msg("recognised")
	return entities, nil
}

func charSpans(resp *structpb.Struct) ([]recogniser.CharSpan, error) {
	list := resp.GetFields()["entities"].GetListValue()
	if list == nil {
		return []recogniser.CharSpan{}, nil
	}

	spans := make([]recogniser.CharSpan, 0, len(list.GetValues()))
	for i, value := range list.GetValues() {
		fields := value.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("entity %d is not an object", i)
		}
		spans = append(spans, recogniser.CharSpan{
			Label: fields["label"].GetStringValue(),
			Start: int(fields["start_char"].GetNumberValue()),
			End:   int(fields["end_char"].GetNumberValue()),
		})
	}
	return spans, nil
}
