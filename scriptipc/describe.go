// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package scriptipc

import (
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"
)

// Describe metadata keys, stored on the describe schema.
const (
	MetaService         = "script_ipc.service"
	MetaProtocolVersion = "script_ipc.protocol_version"
	MetaDescribeVersion = "script_ipc.describe_version"
	DescribeVersion     = "1"
)

// Describe schema field definitions, one row per method.
var describeFields = []arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "method_id", Type: arrow.PrimitiveTypes.Uint64},
	{Name: "request_name", Type: arrow.BinaryTypes.String},
	{Name: "params_json", Type: arrow.BinaryTypes.String},
	{Name: "has_return", Type: &arrow.BooleanType{}},
	{Name: "result_type", Type: arrow.BinaryTypes.String, Nullable: true},
}

// DescribeBatch builds a record batch describing the contract. The schema
// metadata carries the service name and protocol version. The caller must
// Release the batch.
func (c *Contract) DescribeBatch() (arrow.RecordBatch, error) {
	mem := memory.NewGoAllocator()

	nameBuilder := array.NewStringBuilder(mem)
	defer nameBuilder.Release()

	idBuilder := array.NewUint64Builder(mem)
	defer idBuilder.Release()

	requestNameBuilder := array.NewStringBuilder(mem)
	defer requestNameBuilder.Release()

	paramsBuilder := array.NewStringBuilder(mem)
	defer paramsBuilder.Release()

	hasReturnBuilder := array.NewBooleanBuilder(mem)
	defer hasReturnBuilder.Release()

	resultBuilder := array.NewStringBuilder(mem)
	defer resultBuilder.Release()

	for _, m := range c.Methods {
		nameBuilder.Append(m.Name)
		idBuilder.Append(m.ID)
		requestNameBuilder.Append(c.Name + "." + m.Name)

		params := m.Params
		if params == nil {
			params = []ParamSpec{}
		}
		paramsJSON, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("describe %s.%s: marshal params: %w", c.Name, m.Name, err)
		}
		paramsBuilder.Append(string(paramsJSON))

		hasReturnBuilder.Append(m.Result != "")
		if m.Result != "" {
			resultBuilder.Append(m.Result)
		} else {
			resultBuilder.AppendNull()
		}
	}

	cols := []arrow.Array{
		nameBuilder.NewArray(),
		idBuilder.NewArray(),
		requestNameBuilder.NewArray(),
		paramsBuilder.NewArray(),
		hasReturnBuilder.NewArray(),
		resultBuilder.NewArray(),
	}
	for _, col := range cols {
		defer col.Release()
	}

	meta := arrow.NewMetadata(
		[]string{MetaService, MetaProtocolVersion, MetaDescribeVersion},
		[]string{c.Name, strconv.Itoa(int(ProtocolVersion)), DescribeVersion},
	)
	schema := arrow.NewSchema(describeFields, &meta)
	return array.NewRecordBatch(schema, cols, int64(len(c.Methods))), nil
}

// WriteDescribe writes the contract description to w as an Arrow IPC stream.
func (c *Contract) WriteDescribe(w io.Writer) error {
	batch, err := c.DescribeBatch()
	if err != nil {
		return err
	}
	defer batch.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(batch.Schema()))
	if err := writer.Write(batch); err != nil {
		writer.Close()
		return fmt.Errorf("writing describe batch: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing describe stream: %w", err)
	}
	return nil
}

// ReadDescribe reads a contract description written by WriteDescribe.
func ReadDescribe(r io.Reader) (*Contract, error) {
	reader, err := ipc.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading describe stream: %w", err)
	}
	defer reader.Release()

	schema := reader.Schema()
	if schema.NumFields() != len(describeFields) {
		return nil, fmt.Errorf("describe stream has %d fields, want %d", schema.NumFields(), len(describeFields))
	}
	for i, f := range describeFields {
		if got := schema.Field(i); got.Name != f.Name || !arrow.TypeEqual(got.Type, f.Type) {
			return nil, fmt.Errorf("describe stream field %d is %s, want %s", i, got, f)
		}
	}
	meta := schema.Metadata()
	name, ok := meta.GetValue(MetaService)
	if !ok {
		return nil, fmt.Errorf("describe stream is missing %q metadata", MetaService)
	}

	c := &Contract{Name: name}
	for reader.Next() {
		batch := reader.RecordBatch()
		names := batch.Column(0).(*array.String)
		ids := batch.Column(1).(*array.Uint64)
		params := batch.Column(3).(*array.String)
		results := batch.Column(5).(*array.String)
		for i := 0; i < int(batch.NumRows()); i++ {
			m := MethodSpec{Name: names.Value(i), ID: ids.Value(i)}
			if err := json.Unmarshal([]byte(params.Value(i)), &m.Params); err != nil {
				return nil, fmt.Errorf("describe %s.%s: params: %w", name, m.Name, err)
			}
			if len(m.Params) == 0 {
				m.Params = nil
			}
			if !results.IsNull(i) {
				m.Result = results.Value(i)
			}
			c.Methods = append(c.Methods, m)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reading describe batch: %w", err)
	}
	return c, nil
}
