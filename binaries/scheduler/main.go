package main

import (
	"flag"
	"io/ioutil"

	log "github.com/sirupsen/logrus"

	"github.com/darter-io/darter/common/endpoints"
	"github.com/darter-io/darter/config"
	"github.com/darter-io/darter/scheduler/api"
	"github.com/darter-io/darter/scheduler/client"
	"github.com/darter-io/darter/scheduler/server"
)

var addr = flag.String("addr", "localhost:9090", "bind address for the scheduler api")
var httpAddr = flag.String("http_addr", "localhost:9091", "address to serve admin http on")
var configFile = flag.String("config", "", "path to json scheduler configuration")

// Starts the Darter placement scheduler: admin endpoints, worker membership
// source, the engine, and the http/json api serving it.
func main() {
	flag.Parse()
	log.Info("Starting Darter Scheduler")

	cfgText := []byte{}
	if *configFile != "" {
		var err error
		cfgText, err = ioutil.ReadFile(*configFile)
		if err != nil {
			log.Fatal("Error reading config file: ", err)
		}
	}
	cfg, err := config.Parse(cfgText)
	if err != nil {
		log.Fatal("Error parsing config: ", err)
	}

	stat := endpoints.MakeStatsReceiver("scheduler")
	go func() {
		log.Fatal(endpoints.NewAdminServer(*httpAddr, stat).Serve())
	}()

	cluster, err := cfg.Cluster.CreateCluster(nil, stat.Scope("cluster"))
	if err != nil {
		log.Fatal("Error creating cluster: ", err)
	}

	sched := server.NewPlacementScheduler(
		cluster,
		client.MakeHTTPFrontendClient(),
		server.SchedulerConfig{
			NumProbes:       cfg.Scheduler.NumProbes,
			MaxTasksPerPull: cfg.Scheduler.MaxTasksPerPull,
		},
		stat,
	)

	if err := api.NewServer(*addr, sched).Serve(); err != nil {
		log.Fatal("Error serving scheduler api: ", err)
	}
}
