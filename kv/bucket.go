// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket provides a logical key space within a kv store.
type Bucket string

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{[]byte(b), src}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{[]byte(b), src}
}

// MakeKey prefixes key with the bucket name.
func (b Bucket) MakeKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(key)), b...), key...)
}

type bucketGetter struct {
	prefix []byte
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) {
	return g.src.Get(append(append([]byte(nil), g.prefix...), key...))
}

func (g *bucketGetter) Has(key []byte) (bool, error) {
	return g.src.Has(append(append([]byte(nil), g.prefix...), key...))
}

func (g *bucketGetter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

type bucketPutter struct {
	prefix []byte
	src    Putter
}

func (p *bucketPutter) Put(key, val []byte) error {
	return p.src.Put(append(append([]byte(nil), p.prefix...), key...), val)
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.src.Delete(append(append([]byte(nil), p.prefix...), key...))
}
