package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/egaotan/solana-relay/backend"
	"github.com/egaotan/solana-relay/config"
	"github.com/egaotan/solana-relay/dingsdk"
	"github.com/egaotan/solana-relay/fee"
	"github.com/egaotan/solana-relay/networkdetect"
	"github.com/egaotan/solana-relay/program"
	"github.com/egaotan/solana-relay/relay"
	"github.com/egaotan/solana-relay/relayapi"
	"github.com/egaotan/solana-relay/store"
	"github.com/egaotan/solana-relay/swap"
	"github.com/egaotan/solana-relay/tokenswap"
	"github.com/egaotan/solana-relay/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
)

var (
	Init    = int32(0)
	Started = int32(1)
	Stopped = int32(3)
)

// Relayer wires the whole service together: chain backend, relay api client,
// context manager, route registry and the swap builder, fronted by a small
// http api.
type Relayer struct {
	ctx         context.Context
	log         *log.Logger
	config      *config.Config
	status      int32
	owner       solana.PrivateKey
	backend     *backend.Backend
	relayClient *relayapi.Client
	manager     *relay.Manager
	registry    *tokenswap.Registry
	builder     *swap.Builder
	calculator  *swap.FeeCalculator
	store       *store.Store
	dsdk        *dingsdk.DingSdk
	nd          *networkdetect.NetworkDetector
	httpServer  *http.Server
}

func NewRelayer(ctx context.Context, cfg *config.Config) *Relayer {
	relayer := &Relayer{
		ctx:    ctx,
		config: cfg,
		log:    utils.NewLog(config.LogPath, config.AppLog),
		status: Init,
	}
	owner := solana.MustPrivateKeyFromBase58(cfg.Key)
	relayer.owner = owner
	be := backend.NewBackend(ctx, cfg.Nodes)
	be.ImportWallet(cfg.Key)
	be.SetPlayer(owner.PublicKey())
	relayer.backend = be
	relayer.relayClient = relayapi.NewClient(cfg.RelayEndpoint, relayer.log)
	relayer.manager = relay.NewManager(be, relayer.relayClient, owner.PublicKey())
	relayer.registry = tokenswap.NewRegistry(ctx, be)
	relayer.builder = swap.NewBuilder(be, be)
	relayer.calculator = swap.NewFeeCalculator(relayer.builder.Finder())
	if cfg.DBUrl != "" {
		relayer.store = store.NewStore(ctx, cfg.DBUrl, cfg.DBScheme, cfg.DBUser, cfg.DBPasswd)
	}
	if cfg.DingUrl != "" {
		relayer.dsdk = dingsdk.NewDingSdk(cfg.DingUrl)
	}
	if cfg.NetStatus {
		relayer.nd = networkdetect.NewNetworkDetector(cfg.RelayEndpoint, relayer.dsdk)
	}
	return relayer
}

func (relayer *Relayer) Service() {
	relayer.Start()
	<-relayer.ctx.Done()
	relayer.Stop()
}

func (relayer *Relayer) Start() {
	relayer.backend.Start()
	// the block hash cache needs a beat before anything signs
	time.Sleep(time.Second * 2)
	if err := relayer.registry.Start(); err != nil {
		panic(err)
	}
	if err := relayer.manager.Start(); err != nil {
		panic(err)
	}
	if err := relayer.builder.Start(); err != nil {
		panic(err)
	}
	if relayer.store != nil {
		relayer.store.Start()
	}
	if relayer.nd != nil {
		relayer.nd.Start()
	}
	relayer.StartRPC()
	go relayer.refresh()
	atomic.StoreInt32(&relayer.status, Started)
	relayer.log.Printf("relayer has started......")
}

func (relayer *Relayer) Stop() {
	relayer.StopRPC()
	if relayer.nd != nil {
		relayer.nd.Stop()
	}
	if relayer.store != nil {
		relayer.store.Stop()
	}
	relayer.registry.Stop()
	relayer.backend.Stop()
	atomic.StoreInt32(&relayer.status, Stopped)
	relayer.log.Printf("relayer has stopped......")
}

func (relayer *Relayer) refresh() {
	ticker := time.NewTicker(time.Second * 30)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := relayer.manager.Update(); err != nil {
				relayer.log.Printf("relay context update err: %s", err.Error())
			}
			if err := relayer.registry.RefreshBalances(); err != nil {
				relayer.log.Printf("pool balances refresh err: %s", err.Error())
			}
		case <-relayer.ctx.Done():
			return
		}
	}
}

func (relayer *Relayer) StartRPC() {
	router := gin.New()
	g := router.Group("/api")
	g.GET("/context", relayer.getContext)
	g.GET("/topup_fee", relayer.getTopUpFee)
	g.POST("/topup", relayer.postTopUp)
	g.GET("/swap_fee", relayer.getSwapFee)
	g.POST("/swap", relayer.postSwap)
	g.GET("/swaps", relayer.getSwaps)
	relayer.httpServer = &http.Server{
		Addr:    relayer.config.Listen,
		Handler: router,
	}
	relayer.log.Printf("start rpc server......")
	go func() {
		if err := relayer.httpServer.ListenAndServe(); err != nil {
			relayer.log.Printf("ListenAndServe: %s", err.Error())
		}
	}()
}

func (relayer *Relayer) StopRPC() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := relayer.httpServer.Shutdown(ctx); err != nil {
		relayer.log.Printf("rpc server shutdown err: %s", err.Error())
	}
	relayer.log.Printf("rpc server has stopped......")
}

func (relayer *Relayer) getContext(c *gin.Context) {
	relayContext := relayer.manager.Current()
	if relayContext == nil {
		c.JSON(500, "relay context is not loaded")
		return
	}
	c.JSON(200, relayContext)
}

func (relayer *Relayer) getTopUpFee(c *gin.Context) {
	relayContext := relayer.manager.Current()
	if relayContext == nil {
		c.JSON(500, "relay context is not loaded")
		return
	}
	mintStr, ok := c.GetQuery("mint")
	if !ok {
		c.JSON(500, "parameter is invalid")
		return
	}
	mint, err := solana.PublicKeyFromBase58(mintStr)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	expected := fee.FeeAmount{}
	if transactionStr, ok := c.GetQuery("transaction"); ok {
		if expected.Transaction, err = strconv.ParseUint(transactionStr, 10, 64); err != nil {
			c.JSON(500, err.Error())
			return
		}
	}
	if balancesStr, ok := c.GetQuery("account_balances"); ok {
		if expected.AccountBalances, err = strconv.ParseUint(balancesStr, 10, 64); err != nil {
			c.JSON(500, err.Error())
			return
		}
	}
	needed := relay.NeededTopUpAmount(relayContext, expected, mint)
	c.JSON(200, &TopUpFeeResponse{
		ExpectedTopUpFee:      relay.ExpectedTopUpFee(relayContext),
		NeededTransaction:     needed.Transaction,
		NeededAccountBalances: needed.AccountBalances,
	})
}

func (relayer *Relayer) postTopUp(c *gin.Context) {
	relayContext := relayer.manager.Current()
	if relayContext == nil {
		c.JSON(500, "relay context is not loaded")
		return
	}
	request := TopUpRequest{}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	sourceAddress, err := solana.PublicKeyFromBase58(request.SourceAddress)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	sourceMint, err := solana.PublicKeyFromBase58(request.SourceMint)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	var pool *tokenswap.Pool
	if sourceMint != program.WrappedSOL {
		// only a single hop can feed the deposit account directly
		for _, route := range relayer.registry.Routes(sourceMint, program.WrappedSOL) {
			if len(route) == 1 {
				pool = route[0]
				break
			}
		}
		if pool == nil {
			c.JSON(500, relay.ErrNoTopUpRoute.Error())
			return
		}
	}
	trx, err := relay.BuildTopUp(relayer.backend, relayContext, relay.TopUpInput{
		Owner:         relayer.owner,
		SourceAddress: sourceAddress,
		SourceMint:    sourceMint,
		Pool:          pool,
		AmountIn:      request.Amount,
		Slippage:      request.Slippage,
	})
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	signature, err := relayer.relayClient.SendTransaction(trx.Transaction, map[string]string{
		"owner":       relayer.owner.PublicKey().String(),
		"source_mint": sourceMint.String(),
	})
	if err != nil {
		relayer.log.Printf("relay top up submission err: %s", err.Error())
		relayer.notify(fmt.Sprintf("relay top up failed;\nmint: %s;\nerr: %s;", sourceMint, err.Error()))
		c.JSON(500, err.Error())
		return
	}
	relayer.manager.MarkTransactionAsUsed(trx.ExpectedFee.Transaction)
	c.JSON(200, &TopUpResponse{
		Signature:       signature,
		TransactionFee:  trx.ExpectedFee.Transaction,
		AccountBalances: trx.ExpectedFee.AccountBalances,
	})
}

func (relayer *Relayer) getSwapFee(c *gin.Context) {
	relayContext := relayer.manager.Current()
	if relayContext == nil {
		c.JSON(500, "relay context is not loaded")
		return
	}
	sourceMint, err := solana.PublicKeyFromBase58(c.Query("source_mint"))
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	destinationMint, err := solana.PublicKeyFromBase58(c.Query("destination_mint"))
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	var destinationAddress *solana.PublicKey
	if addressStr, ok := c.GetQuery("destination_address"); ok {
		address, err := solana.PublicKeyFromBase58(addressStr)
		if err != nil {
			c.JSON(500, err.Error())
			return
		}
		destinationAddress = &address
	}
	routes := relayer.registry.Routes(sourceMint, destinationMint)
	if len(routes) == 0 {
		c.JSON(500, swap.ErrSwapPoolsNotFound.Error())
		return
	}
	amount, err := relayer.calculator.SwappingNetworkFees(relayContext, relayer.owner.PublicKey(),
		len(routes[0]), sourceMint, destinationMint, destinationAddress)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, &SwapFeeResponse{
		Transaction:     amount.Transaction,
		AccountBalances: amount.AccountBalances,
	})
}

func (relayer *Relayer) postSwap(c *gin.Context) {
	relayContext := relayer.manager.Current()
	if relayContext == nil {
		c.JSON(500, "relay context is not loaded")
		return
	}
	request := SwapRequest{}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(500, err.Error())
		return
	}
	sourceAddress, err := solana.PublicKeyFromBase58(request.SourceAddress)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	sourceMint, err := solana.PublicKeyFromBase58(request.SourceMint)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	destinationMint, err := solana.PublicKeyFromBase58(request.DestinationMint)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	var destinationAddress *solana.PublicKey
	if request.DestinationAddress != "" {
		address, err := solana.PublicKeyFromBase58(request.DestinationAddress)
		if err != nil {
			c.JSON(500, err.Error())
			return
		}
		destinationAddress = &address
	}
	routes := relayer.registry.Routes(sourceMint, destinationMint)
	if len(routes) == 0 {
		c.JSON(500, swap.ErrSwapPoolsNotFound.Error())
		return
	}
	route := routes[0]
	output, err := relayer.builder.Build(relayContext, swap.Input{
		Owner:                     relayer.owner,
		Source:                    swap.TokenAccount{Address: sourceAddress, Mint: sourceMint},
		DestinationMint:           destinationMint,
		DestinationAddress:        destinationAddress,
		InputAmount:               request.Amount,
		Slippage:                  request.Slippage,
		Route:                     route,
		DelegateTransferAuthority: request.Delegate,
	})
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	sendTime := time.Now().Unix()
	signatures := make([]string, 0, len(output.Transactions))
	metadata := map[string]string{
		"owner":            relayer.owner.PublicKey().String(),
		"source_mint":      sourceMint.String(),
		"destination_mint": destinationMint.String(),
	}
	for _, trx := range output.Transactions {
		signature, err := relayer.relayClient.SendTransaction(trx.Transaction, metadata)
		if err != nil {
			relayer.log.Printf("relay submission err: %s", err.Error())
			relayer.notify(fmt.Sprintf("relay submission failed;\nmints: %s -> %s;\nerr: %s;",
				sourceMint, destinationMint, err.Error()))
			relayer.record(&request, route, output, signatures, uint64(sendTime), false)
			c.JSON(500, err.Error())
			return
		}
		signatures = append(signatures, signature)
	}
	mainFee := output.Transactions[0].ExpectedFee
	relayer.manager.MarkTransactionAsUsed(mainFee.Transaction)
	relayer.record(&request, route, output, signatures, uint64(sendTime), true)
	c.JSON(200, &SwapResponse{
		Signatures:      signatures,
		TransactionFee:  mainFee.Transaction,
		AccountBalances: mainFee.AccountBalances,
		PaybackFee:      output.AdditionalPaybackFee,
	})
}

func (relayer *Relayer) getSwaps(c *gin.Context) {
	if relayer.store == nil {
		c.JSON(500, "store is not configured")
		return
	}
	owner, ok := c.GetQuery("owner")
	if !ok {
		owner = relayer.owner.PublicKey().String()
	}
	swaps, err := relayer.store.GetRelaySwap(owner)
	if err != nil {
		c.JSON(500, err.Error())
		return
	}
	c.JSON(200, swaps)
}

func (relayer *Relayer) record(request *SwapRequest, route tokenswap.PoolsPair, output *swap.Output, signatures []string, sendTime uint64, succeed bool) {
	if relayer.store == nil {
		return
	}
	signature := ""
	if len(signatures) > 0 {
		signature = signatures[0]
	}
	mainFee := output.Transactions[0].ExpectedFee
	steps := make([]*store.RelaySwapStep, 0, len(route))
	tokenIn, _ := solana.PublicKeyFromBase58(request.SourceMint)
	for i, pool := range route {
		tokenOut, err := pool.OtherMint(tokenIn)
		if err != nil {
			break
		}
		step := &store.RelaySwapStep{
			Program:  pool.ProgramId.String(),
			Pool:     pool.Address.String(),
			TokenIn:  tokenIn.String(),
			TokenOut: tokenOut.String(),
		}
		if i == 0 {
			step.AmountIn = request.Amount
		}
		steps = append(steps, step)
		tokenIn = tokenOut
	}
	relayer.store.SaveRelaySwap(&store.RelaySwap{
		Owner:            relayer.owner.PublicKey().String(),
		SourceMint:       request.SourceMint,
		DestinationMint:  request.DestinationMint,
		AmountIn:         request.Amount,
		TransactionCount: len(output.Transactions),
		TransactionFee:   mainFee.Transaction,
		AccountBalances:  mainFee.AccountBalances,
		PaybackFee:       output.AdditionalPaybackFee,
		Signature:        signature,
		SendTime:         sendTime,
		FinishTime:       uint64(time.Now().Unix()),
		Succeed:          succeed,
		RelaySwapSteps:   steps,
	})
	if succeed {
		usage := relayer.manager.Current().UsageStatus
		relayer.store.SaveUsageRecord(&store.UsageRecord{
			Owner:        relayer.owner.PublicKey().String(),
			CurrentUsage: usage.CurrentUsage,
			AmountUsed:   usage.AmountUsed,
			Time:         uint64(time.Now().Unix()),
		})
	}
}

func (relayer *Relayer) notify(text string) {
	if relayer.dsdk == nil {
		return
	}
	if err := relayer.dsdk.NotifyText(text); err != nil {
		relayer.log.Printf("ding notify err: %s", err.Error())
	}
}
