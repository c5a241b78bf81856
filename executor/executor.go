// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package executor - apply a batch of packed transactions to a database
//
// all transactions of a batch run in order on one fork; the fork is
// merged only when every transaction executed without a storage error
package executor

import (
	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
)

// Result - outcome of one transaction
type Result struct {
	TxId   merkle.Digest            `json:"txId"`
	Info   string                   `json:"info"`
	Status transactionrecord.Status `json:"status"`
}

// Summary - outcome of a batch
type Summary struct {
	Results   []Result      `json:"results"`
	StateHash merkle.Digest `json:"stateHash"`
}

// Executor - sequential transaction application
type Executor struct {
	database         *storage.Database
	verifySignatures bool
	log              *logger.L
}

// New - an executor for a database
//
// when verifySignatures is set every record must carry a valid
// signature by its source
func New(database *storage.Database, verifySignatures bool) *Executor {
	return &Executor{
		database:         database,
		verifySignatures: verifySignatures,
		log:              logger.New("executor"),
	}
}

// Split - separate a buffer of concatenated records
func Split(buffer []byte) ([]transactionrecord.Packed, error) {
	records := []transactionrecord.Packed(nil)
	for 0 != len(buffer) {
		_, n, err := transactionrecord.Packed(buffer).Unpack()
		if nil != err {
			return nil, errors.Wrapf(err, "record: %d", len(records))
		}
		records = append(records, transactionrecord.Packed(buffer[:n]))
		buffer = buffer[n:]
	}
	return records, nil
}

// Apply - decode every record, execute in order then merge
//
// an undecodable record rejects the whole batch before anything is
// executed; a storage error aborts the batch without merging
func (e *Executor) Apply(records []transactionrecord.Packed) (*Summary, error) {

	transactions := make([]transactionrecord.Transaction, len(records))
	for i, record := range records {
		tx, n, err := record.Unpack()
		if nil != err {
			return nil, errors.Wrapf(err, "record: %d", i)
		}
		if n != len(record) {
			return nil, errors.Wrapf(fault.ErrMalformedEnvelope, "record: %d  trailing bytes: %d", i, len(record)-n)
		}
		if e.verifySignatures {
			err = record.VerifySignature()
			if nil != err {
				return nil, errors.Wrapf(err, "record: %d", i)
			}
		}
		transactions[i] = tx
	}

	cleaner := storage.NewCleaner("executor")
	defer func() {
		if err := cleaner.Close(); nil != err {
			e.log.Errorf("release error: %s", err)
		}
	}()

	fork, err := e.database.CreateFork(cleaner)
	if nil != err {
		return nil, err
	}

	summary := &Summary{
		Results: make([]Result, len(transactions)),
	}

	for i, t := range transactions {
		switch tx := t.(type) {

		case *transactionrecord.TransferTx:
			status, err := tx.Apply(fork)
			if nil != err {
				e.log.Errorf("record: %d  tx: %v  abort: %s", i, tx.Hash(), err)
				return nil, errors.Wrapf(err, "record: %d", i)
			}
			e.log.Debugf("record: %d  tx: %v  %s", i, tx.Hash(), status)
			summary.Results[i] = Result{
				TxId:   tx.Hash(),
				Info:   tx.Info(),
				Status: status,
			}

		default:
			return nil, errors.Wrapf(fault.ErrUnknownTransactionTag, "record: %d", i)
		}
	}

	hashes, err := schema.New(fork).StateHashes()
	if nil != err {
		return nil, err
	}
	summary.StateHash = hashes[0]

	err = e.database.Merge(fork)
	if nil != err {
		return nil, err
	}
	e.log.Infof("applied: %d transactions  state: %v", len(transactions), summary.StateHash)

	return summary, nil
}
