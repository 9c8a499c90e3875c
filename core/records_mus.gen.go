// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	sliceQSvPBqcARcfDiyΔSG9InogΞΞ = ord.NewSliceSer[Chunk](ChunkMUS)
	slicewsHWIcfT5qΣmRdPSpAQmvAΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var LaneMUS = laneMUS{}

type laneMUS struct{}

func (s laneMUS) Marshal(v Lane, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s laneMUS) Unmarshal(bs []byte) (v Lane, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Lane(tmp)
	return
}

func (s laneMUS) Size(v Lane) (size int) {
	return ord.String.Size(string(v))
}

func (s laneMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var BankTypeMUS = bankTypeMUS{}

type bankTypeMUS struct{}

func (s bankTypeMUS) Marshal(v BankType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s bankTypeMUS) Unmarshal(bs []byte) (v BankType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = BankType(tmp)
	return
}

func (s bankTypeMUS) Size(v BankType) (size int) {
	return varint.Int.Size(int(v))
}

func (s bankTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += slicewsHWIcfT5qΣmRdPSpAQmvAΞΞ.Marshal(v.Vector, bs[n:])
	n += varint.Float32.Marshal(v.Norm, bs[n:])
	return n + varint.Int.Marshal(v.Chars, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicewsHWIcfT5qΣmRdPSpAQmvAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Norm, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chars, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Text)
	size += slicewsHWIcfT5qΣmRdPSpAQmvAΞΞ.Size(v.Vector)
	size += varint.Float32.Size(v.Norm)
	return size + varint.Int.Size(v.Chars)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicewsHWIcfT5qΣmRdPSpAQmvAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

var DedupStatsMUS = dedupStatsMUS{}

type dedupStatsMUS struct{}

func (s dedupStatsMUS) Marshal(v DedupStats, bs []byte) (n int) {
	n = varint.Int.Marshal(v.ExactDropped, bs)
	n += varint.Int.Marshal(v.NearDropped, bs[n:])
	n += varint.Float32.Marshal(v.NearDuplicateThreshold, bs[n:])
	return n + varint.Int.Marshal(v.MaxNearChecks, bs[n:])
}

func (s dedupStatsMUS) Unmarshal(bs []byte) (v DedupStats, n int, err error) {
	v.ExactDropped, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.NearDropped, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NearDuplicateThreshold, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.MaxNearChecks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s dedupStatsMUS) Size(v DedupStats) (size int) {
	size = varint.Int.Size(v.ExactDropped)
	size += varint.Int.Size(v.NearDropped)
	size += varint.Float32.Size(v.NearDuplicateThreshold)
	return size + varint.Int.Size(v.MaxNearChecks)
}

func (s dedupStatsMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

var IndexMUS = indexMUS{}

type indexMUS struct{}

func (s indexMUS) Marshal(v Index, bs []byte) (n int) {
	n = varint.Int.Marshal(v.Version, bs)
	n += LaneMUS.Marshal(v.Lane, bs[n:])
	n += BankTypeMUS.Marshal(v.BankType, bs[n:])
	n += varint.Int.Marshal(v.Dimension, bs[n:])
	n += varint.Int.Marshal(v.SourceChars, bs[n:])
	n += varint.Int.Marshal(v.SourceChunkCount, bs[n:])
	n += varint.Int.Marshal(v.ChunkCount, bs[n:])
	n += DedupStatsMUS.Marshal(v.Dedup, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	n += sliceQSvPBqcARcfDiyΔSG9InogΞΞ.Marshal(v.Chunks, bs[n:])
	return n + ord.String.Marshal(v.EmbeddingModel, bs[n:])
}

func (s indexMUS) Unmarshal(bs []byte) (v Index, n int, err error) {
	v.Version, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Lane, n1, err = LaneMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BankType, n1, err = BankTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dimension, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceChars, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dedup, n1, err = DedupStatsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Chunks, n1, err = sliceQSvPBqcARcfDiyΔSG9InogΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EmbeddingModel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexMUS) Size(v Index) (size int) {
	size = varint.Int.Size(v.Version)
	size += LaneMUS.Size(v.Lane)
	size += BankTypeMUS.Size(v.BankType)
	size += varint.Int.Size(v.Dimension)
	size += varint.Int.Size(v.SourceChars)
	size += varint.Int.Size(v.SourceChunkCount)
	size += varint.Int.Size(v.ChunkCount)
	size += DedupStatsMUS.Size(v.Dedup)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	size += sliceQSvPBqcARcfDiyΔSG9InogΞΞ.Size(v.Chunks)
	return size + ord.String.Size(v.EmbeddingModel)
}

func (s indexMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = LaneMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = BankTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DedupStatsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceQSvPBqcARcfDiyΔSG9InogΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}
