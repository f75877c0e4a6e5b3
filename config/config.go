package config

const (
	// MinimumTopUpAmount is the smallest top up worth submitting. A needed
	// top up below this is rounded up to it.
	MinimumTopUpAmount = uint64(1000)
)

var (
	ConfigPath = "./config/"
	ConfigFile = ConfigPath + "config.json"
	CachePath  = "./cache/"
	PoolsFile  = ConfigPath + "pools.json"
	LogPath    = "./logs/"
	BackendLog = "backend"
	RelayLog   = "relay"
	SwapLog    = "swap"
	AppLog     = "app"
	NetworkLog = "network"
	SentTxHash = "sent_tx"
)

type Node struct {
	Rpc    string `json:"rpc"`
	Ws     string `json:"ws"`
	Usable bool   `json:"usable"`
}

type Config struct {
	Nodes          []*Node `json:"nodes"`
	RelayEndpoint  string  `json:"relay_endpoint"`
	User           string  `json:"user"`
	Key            string  `json:"key"`
	RelayProgram   string  `json:"relay_program"`
	PoolsFromChain bool    `json:"pools_from_chain"`
	NetStatus      bool    `json:"net_status"`
	DingUrl        string  `json:"ding-url"`
	DBUrl          string  `json:"db_url"`
	DBScheme       string  `json:"db_scheme"`
	DBUser         string  `json:"db_user"`
	DBPasswd       string  `json:"db_passwd"`
	Listen         string  `json:"listen"`
	Workspace      string  `json:"workspace"`
}
