package networkdetect

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/dingsdk"
	"github.com/egaotan/solana-relay/utils"
	"github.com/go-ping/ping"
)

// NetworkDetector keeps pinging the relay endpoint and alerts when latency
// stays high for a whole window.
type NetworkDetector struct {
	peer   string
	ttl    []int64
	avg    []int64
	pinger *ping.Pinger
	logger *log.Logger
	dsdk   *dingsdk.DingSdk
}

func NewNetworkDetector(peer string, dsdk *dingsdk.DingSdk) *NetworkDetector {
	logger := utils.NewLog(config.LogPath, config.NetworkLog)
	nd := &NetworkDetector{
		peer:   hostOf(peer),
		ttl:    make([]int64, 0),
		logger: logger,
		dsdk:   dsdk,
	}
	return nd
}

func hostOf(peer string) string {
	if index := strings.Index(peer, "://"); index >= 0 {
		peer = peer[index+3:]
	}
	if index := strings.LastIndex(peer, ":"); index >= 0 {
		peer = peer[:index]
	}
	return peer
}

// DetectPeers pings every endpoint and returns the closest one. Used at
// startup to order the rpc nodes.
func DetectPeers(peers []string) (string, int64) {
	detect := func(peer string) int64 {
		pinger, err := ping.NewPinger(hostOf(peer))
		if err != nil {
			panic(err)
		}
		pinger.Count = 3
		pinger.Run()
		stats := pinger.Statistics()
		return stats.AvgRtt.Nanoseconds()
	}
	minttl := int64(math.MaxInt64)
	index := -1
	for i, peer := range peers {
		ttl := detect(peer)
		if ttl < minttl {
			minttl = ttl
			index = i
		}
	}
	return peers[index], minttl
}

func (nd *NetworkDetector) ping() {
	pinger, err := ping.NewPinger(nd.peer)
	if err != nil {
		return
	}
	nd.pinger = pinger
	notifyTime := time.Now().Unix()
	pinger.OnRecv = func(pkt *ping.Packet) {
		nd.ttl = append(nd.ttl, pkt.Rtt.Nanoseconds())
		sum := int64(0)
		for _, x := range nd.ttl {
			sum += x
		}
		avg := sum / int64(len(nd.ttl))
		nd.avg = append(nd.avg, avg)
		if len(nd.ttl) > 300 {
			nd.ttl = nd.ttl[len(nd.ttl)-300:]
		}
		if len(nd.avg) > 300 {
			nd.avg = nd.avg[len(nd.avg)-300:]
		}
		isLow := false
		for _, avgx := range nd.avg {
			if avgx < 20*1000*1000 {
				isLow = true
			}
		}
		now := time.Now().Unix()
		nd.logger.Printf("ping ttl: %d", avg/1000000)
		if !isLow && now-notifyTime > 5*60 {
			nd.notify(nd.avg[len(nd.avg)-1])
			notifyTime = now
		}
	}
	pinger.Run()
}

func (nd *NetworkDetector) notify(ttl int64) {
	if nd.dsdk == nil {
		return
	}
	nd.dsdk.NotifyText(fmt.Sprintf("relay server network ttl: %d;\ntime: %s;",
		ttl/1000000, time.Now().Format("2006-01-02 15:04:05")))
}

func (nd *NetworkDetector) Start() {
	go nd.ping()
}

func (nd *NetworkDetector) Stop() {
	if nd.pinger != nil {
		nd.pinger.Stop()
	}
}
