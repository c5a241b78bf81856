// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/fixtures"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
	"github.com/bitmark-inc/cryptocurrency/util"
)

// the unsigned part of the seed 1 transfer of 50 from first to second owner
var expectedBody = []byte{
	0x00, 0x00, 0x00, 0x2a, 0x00, 0x02, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x5a, 0x4d,
	0x6b, 0xd1, 0x72, 0xcf, 0xaa, 0x9f, 0x01, 0xe2,
	0xec, 0x48, 0x95, 0xe4, 0xab, 0xc5, 0x98, 0xc5,
	0x1e, 0x60, 0xe4, 0x1b, 0x7d, 0x99, 0x95, 0xc2,
	0xe4, 0x1b, 0x41, 0x6e, 0x84, 0x14, 0x20, 0xb1,
	0x42, 0xf2, 0xd5, 0x54, 0x15, 0xc9, 0x93, 0xeb,
	0xe0, 0x5c, 0x8e, 0xa8, 0x88, 0x42, 0x1f, 0x51,
	0x44, 0xea, 0x07, 0x8d, 0x18, 0xe7, 0xa2, 0x90,
	0xf2, 0xe5, 0xce, 0xc6, 0x89, 0x49, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x32,
}

// test the packing/unpacking of a transfer record
//
// ensures that pack->unpack returns the same original value
func TestPackTransfer(t *testing.T) {

	r := transactionrecord.TransferTx{
		Seed: 1,
		From: fixtures.FirstOwnerKey,
		To:   fixtures.SecondOwnerKey,
		Sum:  50,
	}

	expected := append([]byte{}, expectedBody...)
	expected = append(expected, make([]byte, 64)...)

	expectedTxId := merkle.Digest{
		0xa9, 0xa8, 0x91, 0x64, 0x34, 0xfa, 0xc8, 0x73,
		0xfb, 0xba, 0xdb, 0xfe, 0x6b, 0x41, 0x28, 0x0b,
		0x7a, 0x8e, 0xae, 0x40, 0xbf, 0xfe, 0xb8, 0x79,
		0x5c, 0x05, 0xdb, 0x2a, 0x5c, 0x70, 0x95, 0xd0,
	}

	// test the packer
	packed := transactionrecord.Converter().ToMessage(&r)

	// if either of above fail we will have the message _without_ a signature
	if !bytes.Equal(packed, expected) {
		t.Errorf("pack record: %x  expected: %x", packed, expected)
		t.Errorf("*** GENERATED Packed:\n%s", util.FormatBytes("expected", packed))
		t.Fatal("fatal error")
	}

	if transactionrecord.TransferPackedLength != len(packed) {
		t.Errorf("packed length: %d  expected: %d", len(packed), transactionrecord.TransferPackedLength)
	}

	if transactionrecord.TransferTag != packed.Type() {
		t.Errorf("packed type: %d  expected: %d", packed.Type(), transactionrecord.TransferTag)
	}

	// check txId
	txId := r.Hash()

	if txId != expectedTxId {
		t.Errorf("pack tx id: %#v  expected: %#v", txId, expectedTxId)
		t.Logf("*** GENERATED tx id:\n%s", util.FormatBytes("expectedTxId", txId[:]))
	}

	// test the unpacker
	unpacked, n, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if len(packed) != n {
		t.Errorf("did not unpack all data: only used: %d of: %d bytes", n, len(packed))
	}

	transfer, ok := unpacked.(*transactionrecord.TransferTx)
	if !ok {
		t.Fatalf("did not unpack to Transfer")
	}

	// display a JSON version for information
	item := struct {
		TxId     merkle.Digest
		Packed   transactionrecord.Packed
		Unpacked string
	}{
		TxId:     txId,
		Packed:   packed,
		Unpacked: transfer.Info(),
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		t.Fatalf("json error: %s", err)
	}

	t.Logf("Transfer: JSON: %s", b)

	// check that structure is preserved through Pack/Unpack
	// note reg is a pointer here
	if !reflect.DeepEqual(r, *transfer) {
		t.Fatalf("different, original: %v  recovered: %v", r, *transfer)
	}
}

// the converter round trip for a zero seed
func TestConverterRoundTrip(t *testing.T) {
	converter := transactionrecord.Converter()

	transfers := []transactionrecord.TransferTx{
		{Seed: 0, From: fromKey, To: toKey, Sum: 50},
		{Seed: -1, From: toKey, To: fromKey, Sum: 0},
		{Seed: 9223372036854775807, From: fromKey, To: fromKey, Sum: 18446744073709551615},
	}

	for i, tx := range transfers {
		recovered, err := converter.FromMessage(converter.ToMessage(&tx))
		if nil != err {
			t.Fatalf("%d: from message error: %s", i, err)
		}
		if *recovered != tx {
			t.Errorf("%d: recovered: %v  expected: %v", i, *recovered, tx)
		}
	}
}

func TestUnpackConcatenated(t *testing.T) {
	one := transactionrecord.TransferTx{Seed: 1, From: fromKey, To: toKey, Sum: 1}
	two := transactionrecord.TransferTx{Seed: 2, From: toKey, To: fromKey, Sum: 2}

	buffer := append(one.Pack(), two.Pack()...)

	for i, expected := range []transactionrecord.TransferTx{one, two} {
		unpacked, n, err := transactionrecord.Packed(buffer).Unpack()
		if nil != err {
			t.Fatalf("%d: unpack error: %s", i, err)
		}
		if *unpacked.(*transactionrecord.TransferTx) != expected {
			t.Errorf("%d: unpacked: %v  expected: %v", i, unpacked, expected)
		}
		buffer = buffer[n:]
	}

	if 0 != len(buffer) {
		t.Errorf("left over: %d bytes", len(buffer))
	}

	// concatenated records are not a single message
	_, err := transactionrecord.Converter().FromMessage(append(one.Pack(), two.Pack()...))
	if fault.ErrMalformedEnvelope != err {
		t.Errorf("from message error: %v  expected: %v", err, fault.ErrMalformedEnvelope)
	}
}

func TestFromMessageErrors(t *testing.T) {
	good := (&transactionrecord.TransferTx{Seed: 1, From: fromKey, To: toKey, Sum: 50}).Pack()

	modify := func(offset int, values ...byte) transactionrecord.Packed {
		p := append(transactionrecord.Packed{}, good...)
		copy(p[offset:], values)
		return p
	}

	zeroKey := make([]byte, 32)

	items := []struct {
		name   string
		record transactionrecord.Packed
		err    error
	}{
		{"empty", transactionrecord.Packed{}, fault.ErrMalformedEnvelope},
		{"header only", good[:6], fault.ErrMalformedEnvelope},
		{"truncated", good[:len(good)-1], fault.ErrMalformedEnvelope},
		{"oversized", append(append(transactionrecord.Packed{}, good...), 0x00), fault.ErrMalformedEnvelope},
		{"network", modify(0, 0x01), fault.ErrMalformedEnvelope},
		{"protocol version", modify(1, 0x07), fault.ErrMalformedEnvelope},
		{"foreign service", modify(2, 0x00, 0x2b), fault.ErrUnknownTransactionTag},
		{"null tag", modify(4, 0x00, 0x00), fault.ErrUnknownTransactionTag},
		{"create wallet tag", modify(4, 0x00, 0x01), fault.ErrUnknownTransactionTag},
		{"unknown tag", modify(4, 0x01, 0x00), fault.ErrUnknownTransactionTag},
		{"zero source", modify(14, zeroKey...), fault.ErrMalformedKey},
		{"zero destination", modify(46, zeroKey...), fault.ErrMalformedKey},
	}

	for _, item := range items {
		tx, err := transactionrecord.Converter().FromMessage(item.record)
		if item.err != err {
			t.Errorf("%s: error: %v  expected: %v", item.name, err, item.err)
		}
		if nil != tx {
			t.Errorf("%s: unexpected transfer: %v", item.name, tx)
		}
	}
}

func TestPackedType(t *testing.T) {
	good := (&transactionrecord.TransferTx{Seed: 1, From: fromKey, To: toKey, Sum: 50}).Pack()

	if transactionrecord.NullTag != (transactionrecord.Packed{0x00}).Type() {
		t.Errorf("short record is not null tag")
	}

	unknown := append(transactionrecord.Packed{}, good...)
	unknown[5] = 0x7f
	if transactionrecord.InvalidTag != unknown.Type() {
		t.Errorf("unknown tag type: %d", unknown.Type())
	}
}

func TestSignTransfer(t *testing.T) {
	tx := transactionrecord.TransferTx{Seed: 1, From: fixtures.FirstOwnerKey, To: fixtures.SecondOwnerKey, Sum: 50}
	unsigned := tx.Pack()

	err := unsigned.VerifySignature()
	if fault.ErrMissingSignature != err {
		t.Errorf("unsigned verify error: %v", err)
	}

	signed, err := unsigned.Sign(fixtures.FirstOwner)
	if nil != err {
		t.Fatalf("sign error: %s", err)
	}
	if !bytes.Equal(signed[:len(expectedBody)], expectedBody) {
		t.Errorf("signing changed the body")
	}
	if !bytes.Equal(unsigned, tx.Pack()) {
		t.Errorf("signing modified the input")
	}

	err = signed.VerifySignature()
	if nil != err {
		t.Errorf("verify error: %s", err)
	}

	// signature is not part of the transfer value
	recovered, err := transactionrecord.Converter().FromMessage(signed)
	if nil != err {
		t.Fatalf("from message error: %s", err)
	}
	if *recovered != tx {
		t.Errorf("recovered: %v  expected: %v", *recovered, tx)
	}

	// tamper with the sum
	tampered := append(transactionrecord.Packed{}, signed...)
	tampered[len(expectedBody)-1] = 0x33
	err = tampered.VerifySignature()
	if fault.ErrInvalidSignature != err {
		t.Errorf("tampered verify error: %v", err)
	}

	_, err = unsigned.Sign(fixtures.SecondOwner)
	if fault.ErrSignerIsNotSource != err {
		t.Errorf("wrong signer error: %v", err)
	}
}
