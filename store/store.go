package store

import (
	"golang.org/x/net/context"
)

// Store persists relay submissions off the hot path, writes go through
// buffered channels into a single worker.
type Store struct {
	ctx       context.Context
	swapChan  chan *RelaySwap
	usageChan chan *UsageRecord
	dao       *Dao
}

func NewStore(ctx context.Context, url, scheme, user, passwd string) *Store {
	s := &Store{
		ctx:       ctx,
		swapChan:  make(chan *RelaySwap, 32),
		usageChan: make(chan *UsageRecord, 32),
	}
	s.dao = NewDao(url, scheme, user, passwd)
	return s
}

func (s *Store) Start() {
	go s.store()
}

func (s *Store) Stop() {

}

func (s *Store) SaveRelaySwap(swap *RelaySwap) {
	s.swapChan <- swap
}

func (s *Store) SaveUsageRecord(record *UsageRecord) {
	s.usageChan <- record
}

func (s *Store) GetRelaySwap(owner string) ([]*RelaySwap, error) {
	return s.dao.SelectRelaySwap(owner)
}

func (s *Store) GetUsageRecord(owner string) ([]*UsageRecord, error) {
	return s.dao.SelectUsageRecord(owner)
}

func (s *Store) store() {
	for {
		select {
		case swap := <-s.swapChan:
			s.dao.SaveRelaySwap(swap)
		case record := <-s.usageChan:
			s.dao.SaveUsageRecord(record)
		case <-s.ctx.Done():
			return
		}
	}
}
