package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/networkdetect"
	"github.com/egaotan/solana-relay/relayer/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	go shutdown(cancel, quit)

	if len(os.Args) == 2 {
		if err := os.Chdir(os.Args[1]); err != nil {
			panic(err)
		}
	}
	workspace, _ := os.Getwd()
	fmt.Printf("work space: %s\n", workspace)

	infoJson, err := os.ReadFile(config.ConfigFile)
	if err != nil {
		panic(err)
	}
	var cfg config.Config
	if err := json.Unmarshal(infoJson, &cfg); err != nil {
		panic(err)
	}

	usableNodes := make([]*config.Node, 0)
	for _, node := range cfg.Nodes {
		if node.Usable {
			usableNodes = append(usableNodes, node)
		}
	}
	if len(usableNodes) == 0 {
		panic("no usable node")
	}
	cfg.Nodes = usableNodes

	if cfg.NetStatus && len(cfg.Nodes) > 1 {
		rpcs := make([]string, 0, len(cfg.Nodes))
		for _, node := range cfg.Nodes {
			rpcs = append(rpcs, node.Rpc)
		}
		best, ttl := networkdetect.DetectPeers(rpcs)
		fmt.Printf("closest node: %s, ttl: %d\n", best, ttl)
	}

	dir := fmt.Sprintf("./%s_log/", time.Now().Format("2006-01-02"))
	os.Mkdir(dir, os.ModePerm)
	config.LogPath = dir

	relayer := app.NewRelayer(ctx, &cfg)
	relayer.Service()
}

func shutdown(cancel context.CancelFunc, quit <-chan os.Signal) {
	osCall := <-quit
	fmt.Printf("system call: %v, relayer is shutting down......\n", osCall)
	cancel()
}
